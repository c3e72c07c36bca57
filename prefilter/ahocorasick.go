package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// ahoCorasickPrefilter searches for the required literals of several
// branches in one pass. A candidate is any occurrence of any literal, so a
// subject without one cannot match any branch.
//
// Example patterns:
//
//	*.go|*.mod|Makefile   → search for ".go", ".mod", "Makefile"
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	patterns [][]byte
	size     int
}

func newAhoCorasickPrefilter(patterns [][]byte) (*ahoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	size := 0
	for _, p := range patterns {
		builder.AddPattern(p)
		size += len(p)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		patterns: patterns,
		size:     size,
	}, nil
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	s, _ := p.FindMatch(haystack, start)
	return s
}

// FindMatch implements MatchFinder.FindMatch.
func (p *ahoCorasickPrefilter) FindMatch(haystack []byte, start int) (start2, end int) {
	if start < 0 || start >= len(haystack) {
		return -1, -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1, -1
	}
	return m.Start, m.End
}

// IsComplete implements Prefilter.IsComplete. An occurrence of one of
// several literals never decides a match on its own.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. It counts the pattern bytes
// only; the automaton tables are not included.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.size
}

// Patterns returns the literals the automaton searches for.
func (p *ahoCorasickPrefilter) Patterns() [][]byte {
	return p.patterns
}
