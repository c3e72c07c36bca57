// Package coreglob provides a shell-style glob matcher for Go.
//
// A glob pattern matches a whole subject. The syntax is:
//
//	*        any run of bytes, including none
//	?        exactly one byte
//	[abc]    one byte from the set; ranges like [a-z] are allowed
//	[^abc]   one byte not in the set
//	a|b      either alternative (top level only)
//	(...)    capture group, when AllowSave is set (no nesting)
//	\c       the byte c literally, when AllowEscape is set
//
// Matching works on bytes; case folding, when enabled, covers ASCII letters
// only.
//
// Basic usage:
//
//	// Compile a pattern once
//	p, err := coreglob.Compile("*.go|go.mod")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Match many subjects, from any number of goroutines
//	if p.MatchString("main.go") {
//	    fmt.Println("matched!")
//	}
//
// Captures:
//
//	config := coreglob.DefaultConfig()
//	config.AllowSave = true
//	p := coreglob.MustCompileWithConfig("(*)/(*).go", config)
//	caps, ok := p.FindStringCaptures("cmd/main.go")
//	// caps == ["cmd" "main"], ok == true
//
// Performance characteristics:
//   - Plain literal patterns are answered by comparison
//   - Patterns with literals are prefiltered with memchr, memmem or an
//     Aho-Corasick automaton before backtracking
//   - Backtracking memoizes failed continuations, so a branch search takes
//     O(m*n) steps for a branch of m instructions and a subject of n bytes
//
// Besides the immutable Pattern, the package provides Glob, a reconfigurable
// matcher that compiles lazily and keeps the captures of its last match.
package coreglob

import (
	"github.com/coregx/coreglob/meta"
	"github.com/coregx/coreglob/prog"
)

// Config controls pattern syntax and engine behavior. See meta.Config for
// the fields.
type Config = meta.Config

// Stats holds execution statistics of a compiled Pattern.
type Stats = meta.Stats

// Pattern is a compiled glob.
//
// A Pattern is immutable and safe to use concurrently from multiple
// goroutines.
//
// Example:
//
//	p := coreglob.MustCompile("*.[ch]")
//	if p.MatchString("main.c") {
//	    println("matched!")
//	}
type Pattern struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a glob pattern with the default configuration.
//
// The returned error is an ErrorList holding every syntax error found in
// the pattern.
//
// Example:
//
//	p, err := coreglob.Compile("[a-z]*.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a glob pattern and panics if it fails.
//
// Example:
//
//	var sourceFiles = coreglob.MustCompile("*.go|*.s")
func MustCompile(pattern string) *Pattern {
	return MustCompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := coreglob.DefaultConfig()
//	config.CaseSensitive = false
//	p, err := coreglob.CompileWithConfig("*.JPG", config)
func CompileWithConfig(pattern string, config Config) (*Pattern, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Pattern{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// MustCompileWithConfig is like CompileWithConfig but panics if the pattern
// cannot be compiled.
func MustCompileWithConfig(pattern string, config Config) *Pattern {
	p, err := CompileWithConfig(pattern, config)
	if err != nil {
		panic("glob: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// DefaultConfig returns the default configuration for compilation: case
// sensitive, with alternation, escapes and non-printable bytes allowed and
// capture groups disabled.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// Match reports whether the pattern matches the whole of b.
//
// Example:
//
//	p := coreglob.MustCompile("a*b")
//	p.Match([]byte("aXYZb")) // true
//	p.Match([]byte("a"))     // false
func (p *Pattern) Match(b []byte) bool {
	return p.engine.IsMatch(b)
}

// MatchString reports whether the pattern matches the whole of s.
func (p *Pattern) MatchString(s string) bool {
	return p.Match([]byte(s))
}

// FindCaptures matches the whole of b and returns the text of each capture
// group of the matching alternative, in the order the groups close. The
// returned slices alias b. ok is false if the pattern does not match.
//
// Example:
//
//	config := coreglob.DefaultConfig()
//	config.AllowSave = true
//	p := coreglob.MustCompileWithConfig("(*).txt", config)
//	caps, ok := p.FindCaptures([]byte("report.txt"))
//	// string(caps[0]) == "report", ok == true
func (p *Pattern) FindCaptures(b []byte) (captures [][]byte, ok bool) {
	spans, ok := p.engine.FindCaptures(b)
	if !ok {
		return nil, false
	}
	captures = make([][]byte, len(spans))
	for i, s := range spans {
		captures[i] = b[s.Start:s.End:s.End]
	}
	return captures, true
}

// FindStringCaptures is like FindCaptures but for strings.
func (p *Pattern) FindStringCaptures(s string) (captures []string, ok bool) {
	spans, ok := p.engine.FindCaptures([]byte(s))
	if !ok {
		return nil, false
	}
	return spanStrings(s, spans), true
}

// FindCaptureIndex is like FindCaptures but returns the [start, end) offsets
// of each capture instead of its text.
func (p *Pattern) FindCaptureIndex(b []byte) (loc [][]int, ok bool) {
	spans, ok := p.engine.FindCaptures(b)
	if !ok {
		return nil, false
	}
	loc = make([][]int, len(spans))
	for i, s := range spans {
		loc[i] = []int{s.Start, s.End}
	}
	return loc, true
}

func spanStrings(s string, spans []prog.Span) []string {
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = s[sp.Start:sp.End]
	}
	return out
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.pattern
}

// Config returns the configuration the pattern was compiled with.
func (p *Pattern) Config() Config {
	return p.engine.Config()
}

// NumBranches returns the number of top-level alternatives.
//
// Example:
//
//	coreglob.MustCompile("*.go|*.mod|Makefile").NumBranches() // 3
func (p *Pattern) NumBranches() int {
	return p.engine.NumBranches()
}

// Stats returns execution statistics. Useful for checking how often the
// prefilter rejects subjects on a real workload.
func (p *Pattern) Stats() Stats {
	return p.engine.Stats()
}

// ResetStats resets execution statistics to zero.
func (p *Pattern) ResetStats() {
	p.engine.ResetStats()
}

// Strategy returns the name of the execution strategy selected for the
// pattern, for diagnostics.
func (p *Pattern) Strategy() string {
	return p.engine.Strategy().String()
}

// HasCaptures reports whether the compiled pattern contains capture
// groups. It is false whenever AllowSave is off.
func (p *Pattern) HasCaptures() bool {
	return p.engine.Prog().HasCaptures()
}

// StrategyReason explains why the strategy returned by Strategy was chosen.
func (p *Pattern) StrategyReason() string {
	e := p.engine
	return meta.StrategyReason(e.Strategy(), e.Literals(), e.Config())
}

// Disassemble returns the compiled instruction sequence in readable form.
//
// Example:
//
//	coreglob.MustCompile("*.[ch]").Disassemble() // "any '.' oneof[ch]"
func (p *Pattern) Disassemble() string {
	return p.engine.Prog().String()
}

// QuoteMeta returns a string that escapes all glob metacharacters inside
// the argument text; the returned pattern matches the literal text under
// the default configuration.
//
// Example:
//
//	escaped := coreglob.QuoteMeta("file[1].txt")
//	// escaped = `file\[1\].txt`
//	coreglob.MustCompile(escaped).MatchString("file[1].txt") // true
func QuoteMeta(s string) string {
	const special = `\*?[]|()`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
