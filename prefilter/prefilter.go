// Package prefilter provides fast rejection of glob subjects using the
// literal runs extracted from compiled branches.
//
// Every subject matched by a branch contains the branch's required literal.
// A prefilter scans the subject for those literals and rejects it when none
// is present, before the backtracker runs. The package selects a strategy
// from the literal sequence:
//   - One literal of one byte → memchrPrefilter (simd.Memchr)
//   - One literal of several bytes → memmemPrefilter (simd.Memmem)
//   - Several distinct literals → ahoCorasickPrefilter (Aho-Corasick automaton)
//
// Example usage:
//
//	p := prog.MustCompile("*.go|*.mod", prog.DefaultFlags)
//	pf := prefilter.NewBuilder(literal.FromProg(p)).Build()
//	if pf != nil && !prefilter.Accept(pf, []byte("README")) {
//	    // no branch can match, skip the backtracker
//	}
package prefilter

import (
	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/simd"
)

// Prefilter finds candidate occurrences of required literals in a subject.
//
// A candidate does NOT guarantee a match. The caller must still run the
// matcher unless IsComplete() is true.
type Prefilter interface {
	// Find returns the index of the first occurrence of a required literal
	// starting at or after start, or -1 if there is none.
	//
	// Example:
	//
	//	if pf.Find(subject, 0) < 0 {
	//	    return false // no branch can match
	//	}
	Find(haystack []byte, start int) int

	// IsComplete reports whether the prefilter decides the match on its
	// own: the pattern matches exactly the subjects equal to the literal.
	IsComplete() bool

	// LiteralLen returns the literal length when IsComplete() is true,
	// and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the number of heap bytes held by the prefilter.
	HeapBytes() int
}

// MatchFinder is an optional interface for prefilters that can report the
// range of the literal they found.
type MatchFinder interface {
	// FindMatch returns the start and end of the first literal occurrence
	// at or after start, or (-1, -1) if there is none.
	FindMatch(haystack []byte, start int) (start2, end int)
}

// Accept reports whether a subject can match according to pf. For a
// complete prefilter the answer is exact; otherwise false is exact and
// true means the matcher must decide.
func Accept(pf Prefilter, subject []byte) bool {
	if pf.IsComplete() {
		return len(subject) == pf.LiteralLen() && pf.Find(subject, 0) == 0
	}
	return pf.Find(subject, 0) >= 0
}

// Builder constructs the prefilter for a literal sequence.
//
// Selection strategy:
//  1. Any branch without a literal → nil (that branch can match anything)
//  2. One distinct literal of one byte → memchrPrefilter
//  3. One distinct literal → memmemPrefilter
//  4. Several distinct literals → ahoCorasickPrefilter
//
// Example:
//
//	pf := prefilter.NewBuilder(seq).Build()
//	if pf != nil {
//	    pos := pf.Find(subject, 0)
//	}
type Builder struct {
	seq *literal.Seq
}

// NewBuilder creates a prefilter builder over the required literals of a
// program, one per branch.
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq}
}

// Build constructs the best prefilter for the sequence, or returns nil if
// none applies.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.seq)
}

func selectPrefilter(seq *literal.Seq) Prefilter {
	if !seq.AllNonEmpty() {
		return nil
	}

	lits := seq.Bytes()
	if len(lits) == 1 {
		// Branches sharing one literal are complete only if all are.
		complete := seq.AllComplete()
		if len(lits[0]) == 1 {
			return newMemchrPrefilter(lits[0][0], complete)
		}
		return newMemmemPrefilter(lits[0], complete)
	}

	pf, err := newAhoCorasickPrefilter(lits)
	if err != nil {
		return nil
	}
	return pf
}

// memchrPrefilter wraps simd.Memchr as a Prefilter.
//
// Example patterns:
//
//	*.*        → search for '.'
//	[ab]x*     → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter wraps simd.Memmem as a Prefilter.
//
// Example patterns:
//
//	*.go          → search for ".go"
//	src/*/main.c  → search for "/main.c"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle, which must be longer than one byte.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}
