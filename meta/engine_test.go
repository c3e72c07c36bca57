package meta

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/coreglob/prog"
)

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern string
		config  func(*Config)
		want    Strategy
	}{
		{"Makefile", nil, UseLiteral},
		{"go.mod|go.sum", nil, UseLiteral},
		{"", nil, UseLiteral},
		{"*.go", nil, UsePrefilter},
		{"*.go|*.mod", nil, UsePrefilter},
		{"*.*", nil, UsePrefilter},
		{"*", nil, UseBacktracker},
		{"*.go|*", nil, UseBacktracker},
		{"?", nil, UseBacktracker},
		{"*.go", func(c *Config) { c.EnablePrefilter = false }, UseBacktracker},
		{"*.go", func(c *Config) { c.CaseSensitive = false }, UseBacktracker},
		{"Makefile", func(c *Config) { c.CaseSensitive = false }, UseBacktracker},
		{"(*)", func(c *Config) { c.AllowSave = true }, UseBacktracker},
		{"(a)*", func(c *Config) { c.AllowSave = true }, UsePrefilter},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			config := DefaultConfig()
			if tt.config != nil {
				tt.config(&config)
			}
			engine, err := CompileWithConfig(tt.pattern, config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, engine.Strategy(), "strategy %s: %s",
				engine.Strategy(), StrategyReason(engine.Strategy(), engine.Literals(), config))
			assert.Equal(t, tt.want == UsePrefilter, engine.Prefilter() != nil)
		})
	}
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "UseBacktracker", UseBacktracker.String())
	assert.Equal(t, "UsePrefilter", UsePrefilter.String())
	assert.Equal(t, "UseLiteral", UseLiteral.String())
	assert.Equal(t, "Unknown", Strategy(42).String())
}

func TestStrategyReason(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "every branch is a plain literal", StrategyReason(UseLiteral, nil, c))
	assert.Equal(t, "a branch has no literal run", StrategyReason(UseBacktracker, nil, c))
	c.CaseSensitive = false
	assert.Contains(t, StrategyReason(UseBacktracker, nil, c), "case-insensitive")
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("[b-a]|[]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prog.ErrRangeOutOfOrder))
	assert.True(t, errors.Is(err, prog.ErrEmptyClass))

	var list prog.ErrorList
	require.True(t, errors.As(err, &list))
	assert.Len(t, list, 2)
}

// engineTests run under every strategy-affecting configuration; the
// outcome must not depend on the strategy.
var engineTests = []struct {
	pattern string
	subject string
	want    bool
}{
	{"Makefile", "Makefile", true},
	{"Makefile", "Makefile~", false},
	{"go.mod|go.sum", "go.sum", true},
	{"go.mod|go.sum", "go.mod.bak", false},
	{"*.go", "main.go", true},
	{"*.go", "main.gox", false},
	{"*.go", ".go", true},
	{"*.go", "go", false},
	{"*.go|*.mod", "go.mod", true},
	{"*.go|*.mod", "README", false},
	{"*.go|Makefile", "Makefile", true},
	{"*.go|Makefile", "GNUmakefile", false},
	{"src/*/main.?", "src/cmd/main.c", true},
	{"src/*/main.?", "src/cmd/main.cc", false},
	{"*.*", "a.b", true},
	{"*.*", "ab", false},
	{"a|", "", true},
	{"a|", "b", false},
	{"", "", true},
	{"", "x", false},
}

func TestEngineMatchAcrossStrategies(t *testing.T) {
	configs := map[string]func(*Config){
		"default":     nil,
		"noprefilter": func(c *Config) { c.EnablePrefilter = false },
		"nomemo":      func(c *Config) { c.MaxVisitedBits = 0 },
	}

	for name, mod := range configs {
		config := DefaultConfig()
		if mod != nil {
			mod(&config)
		}
		for _, tt := range engineTests {
			t.Run(fmt.Sprintf("%s/%s/%s", name, tt.pattern, tt.subject), func(t *testing.T) {
				engine, err := CompileWithConfig(tt.pattern, config)
				require.NoError(t, err)
				assert.Equal(t, tt.want, engine.IsMatch([]byte(tt.subject)))
			})
		}
	}
}

func TestEngineFoldCase(t *testing.T) {
	config := DefaultConfig()
	config.CaseSensitive = false

	engine, err := CompileWithConfig("*.JPG|Makefile", config)
	require.NoError(t, err)
	assert.True(t, engine.IsMatch([]byte("photo.jpg")))
	assert.True(t, engine.IsMatch([]byte("MAKEFILE")))
	assert.False(t, engine.IsMatch([]byte("photo.png")))
}

func TestEngineFindCaptures(t *testing.T) {
	config := DefaultConfig()
	config.AllowSave = true

	engine, err := CompileWithConfig("(*).(*)", config)
	require.NoError(t, err)

	caps, ok := engine.FindCaptures([]byte("a.b.c"))
	require.True(t, ok)
	assert.Equal(t, []prog.Span{{Start: 0, End: 1}, {Start: 2, End: 5}}, caps)

	caps, ok = engine.FindCaptures([]byte("abc"))
	assert.False(t, ok)
	assert.Nil(t, caps)
}

func TestEngineStats(t *testing.T) {
	engine, err := Compile("*.go|Makefile")
	require.NoError(t, err)
	require.Equal(t, UsePrefilter, engine.Strategy())

	assert.False(t, engine.IsMatch([]byte("README")))
	assert.True(t, engine.IsMatch([]byte("Makefile")))
	assert.True(t, engine.IsMatch([]byte("main.go")))

	stats := engine.Stats()
	assert.Equal(t, uint64(3), stats.Searches)
	assert.Equal(t, uint64(1), stats.PrefilterRejects)
	// "Makefile": first branch backtracks, second compares.
	// "main.go": first branch backtracks and matches.
	assert.Equal(t, uint64(2), stats.Backtracks)
	assert.Equal(t, uint64(1), stats.LiteralCompares)

	engine.ResetStats()
	assert.Equal(t, Stats{}, engine.Stats())
}

func TestEngineAccessors(t *testing.T) {
	config := DefaultConfig()
	engine, err := CompileWithConfig("a*|b*|c", config)
	require.NoError(t, err)

	assert.Equal(t, 3, engine.NumBranches())
	assert.Equal(t, config, engine.Config())
	assert.Equal(t, "a*|b*|c", engine.Prog().Pattern())
	assert.Equal(t, 3, engine.Literals().Len())
}

func TestEngineConcurrent(t *testing.T) {
	engine, err := Compile("*/*/*.go|*.mod")
	require.NoError(t, err)

	subjects := []string{"a/b/c.go", "go.mod", "a/b.go", "README"}
	want := []bool{true, true, false, false}

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := (g + i) % len(subjects)
				if engine.IsMatch([]byte(subjects[k])) != want[k] {
					t.Errorf("IsMatch(%q) != %v", subjects[k], want[k])
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(1600), engine.Stats().Searches)
}

func TestEnginePrefilterRetires(t *testing.T) {
	engine, err := Compile("*a*")
	require.NoError(t, err)
	require.NotNil(t, engine.Prefilter())

	// Every subject contains the literal, so the prefilter never rejects.
	for range 1000 {
		assert.True(t, engine.IsMatch([]byte("banana")))
	}
	assert.False(t, engine.Prefilter().IsActive())
	assert.True(t, engine.IsMatch([]byte("a")))
	assert.False(t, engine.IsMatch([]byte("bbb")))
}

func BenchmarkEngineIsMatch(b *testing.B) {
	subject := []byte(strings.Repeat("path/segment/", 20) + "file.go")
	for _, pattern := range []string{"*/file.go", "*.go|*.mod", "*/*/*/*.go"} {
		engine, err := Compile(pattern)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(pattern, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				engine.IsMatch(subject)
			}
		})
	}
}
