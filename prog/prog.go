// Package prog compiles glob patterns into a compact byte-coded instruction
// sequence and matches subjects against it with a recursive backtracker.
//
// Supported syntax:
//
//	*        any run of bytes, including the empty run
//	?        exactly one byte
//	[abc]    one byte from the class; ranges like [a-z] are expanded
//	[^abc]   one byte not in the class
//	a|b      top-level alternation (AllowOr)
//	(...)    capturing group, not nestable (AllowSave)
//	\c       the literal byte c (AllowEscape)
//
// Matching is anchored at both ends: a subject matches only if the whole
// subject is consumed. The alphabet is the 256 byte values; case folding
// is ASCII only.
package prog

import (
	"strconv"
	"strings"
)

// Op is an instruction opcode in a compiled program.
//
// Opcodes occupy byte values 1 through 8. Any other byte in the instruction
// stream is a literal that must equal the subject byte.
type Op = byte

const (
	// OpAny matches any run of bytes (*).
	OpAny Op = iota + 1
	// OpSingle matches exactly one byte (?).
	OpSingle
	// OpOneOf is followed by a count byte and that many sorted, distinct
	// class members. Matches one byte that is a member.
	OpOneOf
	// OpNoneOf has the same layout as OpOneOf. Matches one byte that is
	// not a member.
	OpNoneOf
	// OpOr separates top-level alternatives.
	OpOr
	// OpStart opens a capture group.
	OpStart
	// OpEnd closes a capture group.
	OpEnd
	// OpByte is followed by a literal byte whose value collides with an
	// opcode.
	OpByte
)

// isOpcode reports whether b must be escaped with OpByte to be a literal.
func isOpcode(b byte) bool {
	return b >= OpAny && b <= OpByte
}

// Flags control both compilation and matching.
type Flags uint8

const (
	// FoldCase makes matching fold ASCII upper case to lower case.
	FoldCase Flags = 1 << iota
	// AllowSave enables (...) capturing groups.
	AllowSave
	// AllowOr enables top-level | alternation.
	AllowOr
	// AllowNonPrintable accepts pattern bytes outside 0x20-0x7e.
	AllowNonPrintable
	// AllowEscape enables \ as an escape character.
	AllowEscape
)

// DefaultFlags are the flags of a default configuration: case sensitive,
// no captures, alternation, non-printable bytes and escapes allowed.
const DefaultFlags = AllowOr | AllowNonPrintable | AllowEscape

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Prog is a compiled glob pattern. A Prog is immutable and safe for
// concurrent use.
type Prog struct {
	pattern  string
	code     []byte
	branches [][]byte
	flags    Flags
	valid    bool
}

// Pattern returns the source pattern.
func (p *Prog) Pattern() string { return p.pattern }

// Code returns the instruction sequence. The caller must not modify it.
func (p *Prog) Code() []byte { return p.code }

// Flags returns the flags the program was compiled with.
func (p *Prog) Flags() Flags { return p.flags }

// Valid reports whether compilation finished without errors.
func (p *Prog) Valid() bool { return p.valid }

// Branches returns the top-level alternatives of the program. A program
// without alternation has exactly one branch. Each branch is a view into
// Code.
func (p *Prog) Branches() [][]byte { return p.branches }

// HasCaptures reports whether the program contains capture groups.
func (p *Prog) HasCaptures() bool {
	for pc := 0; pc < len(p.code); pc += instLen(p.code, pc) {
		if p.code[pc] == OpStart {
			return true
		}
	}
	return false
}

// instLen returns the length of the instruction at pc, clipped to the end
// of code when the instruction is truncated.
func instLen(code []byte, pc int) int {
	n := 1
	switch code[pc] {
	case OpByte:
		n = 2
	case OpOneOf, OpNoneOf:
		if pc+1 < len(code) {
			n = 2 + int(code[pc+1])
		}
	}
	return min(n, len(code)-pc)
}

// truncated reports whether the instruction at pc runs past the end of code.
func truncated(code []byte, pc int) bool {
	switch code[pc] {
	case OpByte:
		return pc+1 >= len(code)
	case OpOneOf, OpNoneOf:
		return pc+1 >= len(code) || pc+2+int(code[pc+1]) > len(code)
	}
	return false
}

// splitBranches cuts code at every top-level OpOr.
func splitBranches(code []byte, allowOr bool) [][]byte {
	if !allowOr {
		return [][]byte{code}
	}
	var branches [][]byte
	start := 0
	for pc := 0; pc < len(code); pc += instLen(code, pc) {
		if code[pc] == OpOr {
			branches = append(branches, code[start:pc:pc])
			start = pc + 1
		}
	}
	return append(branches, code[start:])
}

// String disassembles the program, one instruction per space-separated
// token. It is meant for diagnostics and tests.
//
// Example:
//
//	p, _ := prog.Compile("(*).[ch]", prog.DefaultFlags|prog.AllowSave)
//	fmt.Println(p)
//	// start any end '.' oneof[ch]
func (p *Prog) String() string {
	return Disassemble(p.code)
}

// Disassemble renders an instruction sequence, see Prog.String. An
// instruction cut off by the end of code renders as "truncated" and ends
// the listing.
func Disassemble(code []byte) string {
	var sb strings.Builder
	for pc := 0; pc < len(code); pc += instLen(code, pc) {
		if pc > 0 {
			sb.WriteByte(' ')
		}
		if truncated(code, pc) {
			sb.WriteString("truncated")
			break
		}
		switch op := code[pc]; op {
		case OpAny:
			sb.WriteString("any")
		case OpSingle:
			sb.WriteString("single")
		case OpOr:
			sb.WriteString("or")
		case OpStart:
			sb.WriteString("start")
		case OpEnd:
			sb.WriteString("end")
		case OpByte:
			sb.WriteString(quoteByte(code[pc+1]))
		case OpOneOf, OpNoneOf:
			if op == OpOneOf {
				sb.WriteString("oneof[")
			} else {
				sb.WriteString("noneof[")
			}
			n := instLen(code, pc)
			for _, c := range code[pc+2 : pc+n] {
				sb.WriteString(escapeByte(c))
			}
			sb.WriteByte(']')
		default:
			sb.WriteString(quoteByte(op))
		}
	}
	return sb.String()
}

func quoteByte(c byte) string {
	if c == '\'' {
		return `'\''`
	}
	return "'" + escapeByte(c) + "'"
}

func escapeByte(c byte) string {
	switch {
	case c == '\\':
		return `\\`
	case isPrint(c):
		return string(rune(c))
	}
	return `\x` + strconv.FormatUint(uint64(c)|0x100, 16)[1:]
}
