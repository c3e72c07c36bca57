package meta

import (
	"bytes"
	"sync/atomic"

	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/prefilter"
	"github.com/coregx/coreglob/prog"
)

// Engine is a compiled glob ready for matching.
//
// The Engine:
//  1. Compiles the pattern and extracts each branch's required literal
//  2. Selects a strategy (literal, prefilter, backtracker)
//  3. Matches branches in order, answering plain literal branches by
//     comparison and the rest with the backtracker
//
// Thread safety: the compiled program, literals and prefilter are immutable.
// Per-search memo space comes from a sync.Pool, so many goroutines may call
// IsMatch and FindCaptures on one Engine concurrently.
//
// Example:
//
//	engine, err := meta.Compile("*.go|*.mod")
//	if err != nil {
//	    return err
//	}
//	engine.IsMatch([]byte("go.mod")) // true
type Engine struct {
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on
	// 32-bit platforms.
	stats Stats

	prog        *prog.Prog
	config      Config
	strategy    Strategy
	literals    *literal.Seq
	tracker     *prefilter.Tracker
	backtracker *prog.Backtracker
	statePool   *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts IsMatch and FindCaptures calls
	Searches uint64

	// PrefilterRejects counts subjects rejected without backtracking
	PrefilterRejects uint64

	// LiteralCompares counts branches answered by direct comparison
	LiteralCompares uint64

	// Backtracks counts branch searches run by the backtracker
	Backtracks uint64
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Prog returns the compiled program.
func (e *Engine) Prog() *prog.Prog {
	return e.prog
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Literals returns the required literal of each branch.
func (e *Engine) Literals() *literal.Seq {
	return e.literals
}

// Prefilter returns the prefilter tracker, or nil if the strategy does not
// use one.
func (e *Engine) Prefilter() *prefilter.Tracker {
	return e.tracker
}

// NumBranches returns the number of top-level alternatives.
func (e *Engine) NumBranches() int {
	return len(e.prog.Branches())
}

// Stats returns execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("rejected:", stats.PrefilterRejects, "of", stats.Searches)
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:         atomic.LoadUint64(&e.stats.Searches),
		PrefilterRejects: atomic.LoadUint64(&e.stats.PrefilterRejects),
		LiteralCompares:  atomic.LoadUint64(&e.stats.LiteralCompares),
		Backtracks:       atomic.LoadUint64(&e.stats.Backtracks),
	}
}

// ResetStats resets execution statistics to zero and re-enables a retired
// prefilter.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.PrefilterRejects, 0)
	atomic.StoreUint64(&e.stats.LiteralCompares, 0)
	atomic.StoreUint64(&e.stats.Backtracks, 0)
	if e.tracker != nil {
		e.tracker.Reset()
	}
}

// getSearchState retrieves a SearchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}

// search matches the whole subject and returns the captures of the first
// matching branch.
func (e *Engine) search(subject []byte) ([]prog.Span, bool) {
	atomic.AddUint64(&e.stats.Searches, 1)

	if e.tracker != nil && !e.tracker.Check(subject) {
		atomic.AddUint64(&e.stats.PrefilterRejects, 1)
		return nil, false
	}

	var state *SearchState
	defer func() {
		if state != nil {
			e.putSearchState(state)
		}
	}()

	for i := range e.prog.Branches() {
		if lit := e.literals.Get(i); lit.Complete && e.config.CaseSensitive {
			atomic.AddUint64(&e.stats.LiteralCompares, 1)
			if bytes.Equal(subject, lit.Bytes) {
				return nil, true
			}
			continue
		}

		if state == nil {
			state = e.getSearchState()
		}
		atomic.AddUint64(&e.stats.Backtracks, 1)
		if caps, ok := e.backtracker.MatchBranch(state.backtracker, i, subject); ok {
			return caps, true
		}
	}
	return nil, false
}
