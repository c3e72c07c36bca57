// Package literal extracts literal byte runs from compiled glob programs.
//
// Every subject matched by a branch contains each of the branch's literal
// runs, so a run is a cheap necessary condition that prefilters can test
// before the backtracker runs. The longest run of a branch is usually the
// most selective one.
//
// Example:
//
//	p := prog.MustCompile("*/cmd/*.go|*.md", prog.DefaultFlags)
//	seq := literal.FromProg(p)
//	fmt.Println(seq.Get(0), seq.Get(1))
//	// literal{/cmd/, complete=false} literal{.md, complete=false}
package literal

import "bytes"

// Literal is a byte run required by one branch of a program.
type Literal struct {
	// Bytes contains the required run. It is empty when the branch has no
	// literal instructions.
	Bytes []byte

	// Complete is true when the branch consists of this run and nothing
	// else, so the branch matches exactly the subjects equal to Bytes.
	Complete bool
}

// NewLiteral creates a Literal from the given bytes and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// IsEmpty reports whether the literal has no bytes.
func (l Literal) IsEmpty() bool {
	return len(l.Bytes) == 0
}

// String returns a representation of the literal for debugging.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is the sequence of required literals of a program, one per branch,
// in branch order.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// AllNonEmpty reports whether every literal in the sequence has at least
// one byte. A prefilter over the sequence is only sound in that case: a
// branch without a required literal can match anything.
func (s *Seq) AllNonEmpty() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if lit.IsEmpty() {
			return false
		}
	}
	return true
}

// AllComplete reports whether every branch is a plain literal.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Bytes returns the literal bytes of every entry, deduplicated, in first
// occurrence order.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, 0, s.Len())
next:
	for _, lit := range s.literals {
		for _, b := range out {
			if bytes.Equal(b, lit.Bytes) {
				continue next
			}
		}
		out = append(out, lit.Bytes)
	}
	return out
}
