package meta

import (
	"sync"

	"github.com/coregx/coreglob/prog"
)

// SearchState holds per-search mutable state for concurrent searches on one
// Engine. It is obtained from a sync.Pool and must not be shared between
// goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
type SearchState struct {
	// backtracker holds the memo bit set, reused across searches.
	backtracker *prog.BacktrackerState
}

func newSearchState() *SearchState {
	return &SearchState{
		backtracker: prog.NewBacktrackerState(),
	}
}

// searchStatePool manages a pool of SearchState instances.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool() *searchStatePool {
	return &searchStatePool{
		pool: sync.Pool{
			New: func() any {
				return newSearchState()
			},
		},
	}
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse. The memo is cleared by
// the backtracker before each branch search, not here.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
