package prog

import "github.com/coregx/coreglob/internal/conv"

// compiler holds the state of a single left-to-right compilation pass.
type compiler struct {
	pattern string
	flags   Flags
	code    []byte
	errs    ErrorList
	open    bool // a capture group is open
}

// Compile translates pattern into an instruction sequence.
//
// Compilation never stops at the first error: every violation is recorded
// and scanning continues, so the returned error (an ErrorList) reports all
// of them. A best-effort *Prog is returned even when err != nil; its Valid
// method reports false and it must not be used for matching.
//
// An unterminated ( is closed implicitly at the end of the pattern, so
// "(abc" compiles like "(abc)".
//
// Example:
//
//	p, err := prog.Compile("*.[ch]", prog.DefaultFlags)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p) // any '.' oneof[ch]
func Compile(pattern string, flags Flags) (*Prog, error) {
	c := &compiler{
		pattern: pattern,
		flags:   flags,
		code:    make([]byte, 0, len(pattern)+1),
	}
	c.compile()

	p := &Prog{
		pattern:  pattern,
		code:     c.code,
		branches: splitBranches(c.code, flags.Has(AllowOr)),
		flags:    flags,
		valid:    len(c.errs) == 0,
	}
	return p, c.errs.Err()
}

// MustCompile is like Compile but panics if the pattern has errors.
func MustCompile(pattern string, flags Flags) *Prog {
	p, err := Compile(pattern, flags)
	if err != nil {
		panic("glob: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

func (c *compiler) compile() {
	n := len(c.pattern)
	for i := 0; i < n; i++ {
		switch ch := c.pattern[i]; ch {
		case '*':
			c.code = append(c.code, OpAny)
		case '?':
			c.code = append(c.code, OpSingle)
		case '[':
			i = c.compileClass(i + 1)
		case '|':
			if !c.flags.Has(AllowOr) {
				c.literal(i)
				break
			}
			if i == 0 {
				c.fail(ErrInvalidAlternation, i)
			}
			c.code = append(c.code, OpOr)
		case '(':
			if !c.flags.Has(AllowSave) {
				c.literal(i)
				break
			}
			if c.open {
				c.fail(ErrInvalidGroupNesting, i)
			}
			c.code = append(c.code, OpStart)
			c.open = true
		case ')':
			if !c.flags.Has(AllowSave) {
				c.literal(i)
				break
			}
			if !c.open {
				c.fail(ErrInvalidGroupNesting, i)
			}
			c.code = append(c.code, OpEnd)
			c.open = false
		case '\\':
			// A trailing backslash is a literal backslash.
			if c.flags.Has(AllowEscape) && i < n-1 {
				i++
			}
			c.literal(i)
		default:
			c.literal(i)
		}
	}

	if c.flags.Has(AllowSave) && c.open {
		c.code = append(c.code, OpEnd)
	}
}

// compileClass parses a bracket class whose body starts at i (just past
// the '['). It returns the index of the closing ']', or len(pattern) when
// the class is unterminated.
func (c *compiler) compileClass(i int) int {
	n := len(c.pattern)
	escape := c.flags.Has(AllowEscape)

	op := OpOneOf
	if i < n && c.pattern[i] == '^' {
		op = OpNoneOf
		i++
	}

	// Find the closing bracket.
	first := i
	for i < n && c.pattern[i] != ']' {
		if escape && c.pattern[i] == '\\' {
			i++
		}
		i++
	}
	if i >= n {
		i = n
		c.fail(ErrUnterminatedClass, i)
	}
	last := i - 1
	if first > last {
		c.fail(ErrEmptyClass, last)
	}

	var set ByteSet
	for k := first; k <= last; k++ {
		switch {
		case escape && c.pattern[k] == '\\':
			if k < last {
				k++
			}
			c.classByte(&set, k)
		case k+2 <= last && c.pattern[k+1] == '-':
			lo, hi := c.pattern[k], c.pattern[k+2]
			if lo >= hi {
				c.fail(ErrRangeOutOfOrder, k+2)
			}
			for ch := int(lo); ch <= int(hi); ch++ {
				if !c.validByte(byte(ch)) {
					c.fail(ErrInvalidCharacter, k)
					break
				}
			}
			set.AddRange(lo, hi)
			k += 2
		default:
			c.classByte(&set, k)
		}
	}

	c.emitClass(op, &set)
	return i
}

// emitClass serializes a class as opcode, count, sorted members. A class
// over all 256 bytes cannot be counted in one byte: one-of becomes
// OpSingle and none-of becomes an empty one-of, which matches nothing.
func (c *compiler) emitClass(op Op, set *ByteSet) {
	if set.IsFull() {
		if op == OpOneOf {
			c.code = append(c.code, OpSingle)
		} else {
			c.code = append(c.code, OpOneOf, 0)
		}
		return
	}
	c.code = append(c.code, op, conv.IntToUint8(set.Len()))
	c.code = set.AppendMembers(c.code)
}

func (c *compiler) classByte(set *ByteSet, k int) {
	ch := c.pattern[k]
	if !c.validByte(ch) {
		c.fail(ErrInvalidCharacter, k)
	}
	set.Add(ch)
}

// literal emits the pattern byte at i as a literal.
func (c *compiler) literal(i int) {
	ch := c.pattern[i]
	if !c.validByte(ch) {
		c.fail(ErrInvalidCharacter, i)
	}
	if isOpcode(ch) {
		c.code = append(c.code, OpByte)
	}
	c.code = append(c.code, ch)
}

func (c *compiler) validByte(ch byte) bool {
	return c.flags.Has(AllowNonPrintable) || isPrint(ch)
}

func (c *compiler) fail(kind error, pos int) {
	c.errs = append(c.errs, newError(c.pattern, kind, pos))
}
