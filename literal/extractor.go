package literal

import "github.com/coregx/coreglob/prog"

// FromProg returns the required literal of each branch of p.
func FromProg(p *prog.Prog) *Seq {
	branches := p.Branches()
	lits := make([]Literal, len(branches))
	for i, b := range branches {
		lits[i] = FromBranch(b)
	}
	return NewSeq(lits...)
}

// FromBranch returns the longest literal run in a compiled branch. Runs are
// broken by any non-literal instruction, group markers included. The
// returned bytes are a fresh copy.
//
// A branch with no instructions is complete with an empty literal: it
// matches only the empty subject.
func FromBranch(code []byte) Literal {
	var best, cur []byte
	complete := true

	flush := func() {
		if len(cur) > len(best) {
			best = cur
		}
		cur = nil
	}

	for pc := 0; pc < len(code); {
		switch op := code[pc]; op {
		case prog.OpByte:
			cur = append(cur, code[pc+1])
			pc += 2
		case prog.OpOneOf, prog.OpNoneOf:
			flush()
			complete = false
			pc += 2 + int(code[pc+1])
		case prog.OpAny, prog.OpSingle, prog.OpOr, prog.OpStart, prog.OpEnd:
			flush()
			complete = false
			pc++
		default:
			cur = append(cur, op)
			pc++
		}
	}
	flush()

	return NewLiteral(best, complete)
}
