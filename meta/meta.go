package meta

import (
	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/prefilter"
	"github.com/coregx/coreglob/prog"
)

// Compile compiles a glob pattern with the default configuration.
//
// Example:
//
//	engine, err := meta.Compile("src/*/[a-z]*.go")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Steps:
//  1. Validate the configuration
//  2. Compile the pattern to a program
//  3. Extract each branch's required literal
//  4. Select a strategy and build its prefilter
//
// Returns a *ConfigError for a bad configuration and a prog.ErrorList
// holding every syntax error of the pattern.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.AllowSave = true
//	engine, err := meta.CompileWithConfig("(*)/(*).go", config)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p, err := prog.Compile(pattern, config.Flags())
	if err != nil {
		return nil, err
	}
	return newEngine(p, config), nil
}

func newEngine(p *prog.Prog, config Config) *Engine {
	literals := literal.FromProg(p)
	strategy, pf := SelectStrategy(literals, config)

	return &Engine{
		prog:        p,
		config:      config,
		strategy:    strategy,
		literals:    literals,
		tracker:     prefilter.NewTracker(pf),
		backtracker: prog.NewBacktracker(p).WithMaxVisitedBits(config.MaxVisitedBits),
		statePool:   newSearchStatePool(),
	}
}

// IsMatch reports whether the pattern matches the whole subject.
//
// Example:
//
//	engine, _ := meta.Compile("*.go")
//	engine.IsMatch([]byte("main.go"))  // true
//	engine.IsMatch([]byte("main.go~")) // false
func (e *Engine) IsMatch(subject []byte) bool {
	_, ok := e.search(subject)
	return ok
}

// FindCaptures matches the whole subject and returns the spans of the
// capture groups of the first matching branch, in the order their groups
// close. A match without groups returns a nil slice.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.AllowSave = true
//	engine, _ := meta.CompileWithConfig("(*).(*)", config)
//	caps, ok := engine.FindCaptures([]byte("a.b.c"))
//	// caps == [{0 1} {2 5}], ok == true
func (e *Engine) FindCaptures(subject []byte) ([]prog.Span, bool) {
	return e.search(subject)
}
