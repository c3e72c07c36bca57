package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/prog"
)

func build(t *testing.T, pattern string) Prefilter {
	t.Helper()
	p, err := prog.Compile(pattern, prog.DefaultFlags)
	require.NoError(t, err)
	return NewBuilder(literal.FromProg(p)).Build()
}

func TestBuilderSelection(t *testing.T) {
	tests := []struct {
		pattern  string
		wantType string
		complete bool
	}{
		{"*", "", false},
		{"*.go|*", "", false},
		{"?", "", false},
		{"*.*", "*prefilter.memchrPrefilter", false},
		{"x", "*prefilter.memchrPrefilter", true},
		{"*.go", "*prefilter.memmemPrefilter", false},
		{"Makefile", "*prefilter.memmemPrefilter", true},
		{"Makefile|Makefile", "*prefilter.memmemPrefilter", true},
		{"Makefile|*Makefile", "*prefilter.memmemPrefilter", false},
		{"*.go|*.mod", "*prefilter.ahoCorasickPrefilter", false},
		{"go.mod|go.sum", "*prefilter.ahoCorasickPrefilter", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pf := build(t, tt.pattern)
			if tt.wantType == "" {
				assert.Nil(t, pf)
				return
			}
			require.NotNil(t, pf)
			assert.Equal(t, tt.wantType, typeName(pf))
			assert.Equal(t, tt.complete, pf.IsComplete())
		})
	}
}

func typeName(pf Prefilter) string {
	switch pf.(type) {
	case *memchrPrefilter:
		return "*prefilter.memchrPrefilter"
	case *memmemPrefilter:
		return "*prefilter.memmemPrefilter"
	case *ahoCorasickPrefilter:
		return "*prefilter.ahoCorasickPrefilter"
	}
	return "unknown"
}

func TestAccept(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"*.*", "a.b", true},
		{"*.*", "ab", false},
		{"x", "x", true},
		{"x", "xx", false},
		{"x", "", false},
		{"*.go", "main.go", true},
		{"*.go", "main.c", false},
		{"*.go", "", false},
		{"Makefile", "Makefile", true},
		{"Makefile", "Makefile.old", false},
		{"Makefile", "a Makefile", false},
		{"*.go|*.mod", "go.mod", true},
		{"*.go|*.mod", "x.go", true},
		{"*.go|*.mod", "README", false},
		// Candidates are necessary, not sufficient.
		{"*.go", ".gox", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.subject, func(t *testing.T) {
			pf := build(t, tt.pattern)
			require.NotNil(t, pf)
			assert.Equal(t, tt.want, Accept(pf, []byte(tt.subject)))
		})
	}
}

func TestFindOffsets(t *testing.T) {
	hay := []byte("src/a.go/b.go")

	pf := newMemmemPrefilter([]byte(".go"), false)
	assert.Equal(t, 5, pf.Find(hay, 0))
	assert.Equal(t, 10, pf.Find(hay, 6))
	assert.Equal(t, -1, pf.Find(hay, 11))
	assert.Equal(t, -1, pf.Find(hay, -1))
	assert.Equal(t, -1, pf.Find(hay, len(hay)))

	mc := newMemchrPrefilter('/', false)
	assert.Equal(t, 3, mc.Find(hay, 0))
	assert.Equal(t, 8, mc.Find(hay, 4))
	assert.Equal(t, 0, mc.LiteralLen())
	assert.Equal(t, 0, mc.HeapBytes())
}

func TestAhoCorasickFindMatch(t *testing.T) {
	ac, err := newAhoCorasickPrefilter([][]byte{[]byte(".mod"), []byte(".sum")})
	require.NoError(t, err)

	var _ MatchFinder = ac

	hay := []byte("go.sum and go.mod")
	start, end := ac.FindMatch(hay, 0)
	assert.Equal(t, 2, start)
	assert.Equal(t, 6, end)

	start, end = ac.FindMatch(hay, 3)
	assert.Equal(t, 13, start)
	assert.Equal(t, 17, end)

	start, end = ac.FindMatch(hay, 14)
	assert.Equal(t, -1, start)
	assert.Equal(t, -1, end)

	assert.Equal(t, 8, ac.HeapBytes())
	assert.Len(t, ac.Patterns(), 2)
	assert.Equal(t, 0, ac.LiteralLen())
}

func TestMemmemCopiesNeedle(t *testing.T) {
	needle := []byte("abc")
	pf := newMemmemPrefilter(needle, true)
	needle[0] = 'x'
	assert.Equal(t, 0, pf.Find([]byte("abc"), 0))
	assert.Equal(t, 3, pf.LiteralLen())
}
