package meta

import (
	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/prefilter"
)

// Strategy represents the execution strategy of an Engine.
type Strategy int

const (
	// UseBacktracker runs the backtracker on every subject.
	// Selected for:
	//   - Case-insensitive patterns
	//   - Patterns with a branch that has no literal (e.g. "*", "?.[ch]")
	//   - When EnablePrefilter is false
	UseBacktracker Strategy = iota

	// UsePrefilter rejects subjects lacking every branch's required literal,
	// then runs the backtracker.
	// Selected for:
	//   - Case-sensitive patterns where every branch has a literal run
	UsePrefilter

	// UseLiteral compares the subject against each branch directly.
	// Selected for:
	//   - Case-sensitive patterns made only of literal bytes
	//     (e.g. "Makefile", "go.mod|go.sum")
	UseLiteral
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktracker:
		return "UseBacktracker"
	case UsePrefilter:
		return "UsePrefilter"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

// SelectStrategy chooses the strategy for a pattern from its branch
// literals, and returns the prefilter when the strategy uses one.
func SelectStrategy(literals *literal.Seq, config Config) (Strategy, prefilter.Prefilter) {
	if !config.CaseSensitive {
		return UseBacktracker, nil
	}
	if literals.AllComplete() {
		return UseLiteral, nil
	}
	if !config.EnablePrefilter {
		return UseBacktracker, nil
	}
	if pf := prefilter.NewBuilder(literals).Build(); pf != nil {
		return UsePrefilter, pf
	}
	return UseBacktracker, nil
}

// StrategyReason provides a human-readable explanation for strategy selection.
//
// Example:
//
//	strategy, _ := meta.SelectStrategy(literals, config)
//	vlog.Infof("using %s: %s", strategy, meta.StrategyReason(strategy, literals, config))
func StrategyReason(strategy Strategy, literals *literal.Seq, config Config) string {
	switch strategy {
	case UseLiteral:
		return "every branch is a plain literal"
	case UsePrefilter:
		if literals.Len() > 1 {
			return "required literals of all branches searched with one automaton"
		}
		return "required literal searched before backtracking"
	case UseBacktracker:
		if !config.CaseSensitive {
			return "case-insensitive pattern, literals cannot be searched exactly"
		}
		if !config.EnablePrefilter {
			return "prefilter disabled in configuration"
		}
		return "a branch has no literal run"
	default:
		return "unknown strategy"
	}
}
