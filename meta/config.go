// Package meta implements the glob engine that coordinates literal
// prefilters and the backtracking matcher.
//
// The engine picks one of three strategies per compiled pattern:
//   - UseLiteral: every branch is a plain literal, compared directly
//   - UsePrefilter: required literals reject subjects before backtracking
//   - UseBacktracker: every subject goes to the backtracker
//
// Compiled engines are immutable and safe for concurrent use.
package meta

import (
	"github.com/coregx/coreglob/prog"
)

// Config controls pattern syntax and engine behavior.
//
// The first five fields select the accepted syntax and the matching mode.
// The rest tune the engine without changing results.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.CaseSensitive = false
//	engine, err := meta.CompileWithConfig("*.JPG", config)
type Config struct {
	// CaseSensitive compares ASCII letters exactly. When false, 'A'-'Z'
	// and 'a'-'z' compare equal to their other case; other bytes compare
	// exactly.
	// Default: true
	CaseSensitive bool

	// AllowSave enables '(' and ')' capture groups.
	// Default: false
	AllowSave bool

	// AllowOr enables top-level '|' alternation.
	// Default: true
	AllowOr bool

	// AllowNonPrintable accepts bytes outside 0x20-0x7e in patterns.
	// Default: true
	AllowNonPrintable bool

	// AllowEscape makes '\' quote the next byte.
	// Default: true
	AllowEscape bool

	// EnablePrefilter enables literal-based rejection before backtracking.
	// Prefilters only apply to case-sensitive patterns.
	// Default: true
	EnablePrefilter bool

	// MaxVisitedBits caps the memo bit set of one branch search, which
	// needs (len(branch)+1)*(len(subject)+1) bits. Larger searches run
	// without memoization. Zero disables memoization.
	// Default: 2,097,152 (256KB)
	MaxVisitedBits int
}

// DefaultConfig returns a configuration with the default syntax: case
// sensitive, alternation, escapes and non-printable bytes on, captures off.
func DefaultConfig() Config {
	return Config{
		CaseSensitive:     true,
		AllowSave:         false,
		AllowOr:           true,
		AllowNonPrintable: true,
		AllowEscape:       true,
		EnablePrefilter:   true,
		MaxVisitedBits:    prog.DefaultMaxVisitedBits,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxVisitedBits: 0 to 1<<30
func (c Config) Validate() error {
	if c.MaxVisitedBits < 0 || c.MaxVisitedBits > 1<<30 {
		return &ConfigError{
			Field:   "MaxVisitedBits",
			Message: "must be between 0 and 1073741824",
		}
	}
	return nil
}

// Flags returns the compiler flags selected by c.
func (c Config) Flags() prog.Flags {
	var f prog.Flags
	if !c.CaseSensitive {
		f |= prog.FoldCase
	}
	if c.AllowSave {
		f |= prog.AllowSave
	}
	if c.AllowOr {
		f |= prog.AllowOr
	}
	if c.AllowNonPrintable {
		f |= prog.AllowNonPrintable
	}
	if c.AllowEscape {
		f |= prog.AllowEscape
	}
	return f
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "glob: invalid config: " + e.Field + ": " + e.Message
}
