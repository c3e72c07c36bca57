package coreglob

import (
	"fmt"
	"sync"

	"github.com/coregx/coreglob/prog"
)

// Glob is a reconfigurable glob matcher.
//
// Unlike Pattern, a Glob can change its syntax flags after construction.
// It compiles lazily: the first query after construction or after a setter
// compiles the pattern, and later queries reuse the result. A Glob also
// keeps the captures of its last match for Capture and Captures.
//
// A Glob is safe for concurrent use, but its methods are serialized, and
// Capture reflects whichever Match ran last. Share a Pattern instead when
// matching from many goroutines.
//
// Example:
//
//	g := coreglob.New("(*).txt")
//	g.SetAllowSave(true)
//	if g.MatchString("report.txt") {
//	    name, _ := g.Capture(0) // "report"
//	}
type Glob struct {
	mu sync.Mutex

	pattern string
	config  Config

	compiled *Pattern // nil until compiled, or when compilation failed
	done     bool     // compilation ran for the current config
	err      error

	captures []string
}

// New creates a Glob for pattern with the default configuration.
func New(pattern string) *Glob {
	return NewWithConfig(pattern, DefaultConfig())
}

// NewWithConfig creates a Glob for pattern with a custom configuration.
func NewWithConfig(pattern string, config Config) *Glob {
	return &Glob{
		pattern: pattern,
		config:  config,
	}
}

// compile compiles the pattern if the cached result is stale. g.mu must be
// held.
func (g *Glob) compile() {
	if g.done {
		return
	}
	g.compiled, g.err = CompileWithConfig(g.pattern, g.config)
	g.done = true
}

// invalidate drops the cached compilation and captures. g.mu must be held.
func (g *Glob) invalidate() {
	g.compiled = nil
	g.err = nil
	g.done = false
	g.captures = nil
}

// Pattern returns the source pattern.
func (g *Glob) Pattern() string {
	return g.pattern
}

// IsPattern reports whether the pattern contains glob syntax under the
// current flags. It does not compile the pattern.
func (g *Glob) IsPattern() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return isPattern(g.pattern, g.config)
}

// IsValid compiles the pattern if needed and reports whether it compiled
// without errors.
func (g *Glob) IsValid() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.compile()
	return g.err == nil
}

// Err compiles the pattern if needed and returns the compile error, or nil.
func (g *Glob) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.compile()
	return g.err
}

// Compiled compiles the pattern if needed and returns the compiled Pattern
// for the current flags.
func (g *Glob) Compiled() (*Pattern, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.compile()
	return g.compiled, g.err
}

// Match reports whether the pattern matches the whole of b and records the
// captures of the match. An invalid pattern matches nothing.
func (g *Glob) Match(b []byte) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.compile()
	g.captures = nil
	if g.err != nil {
		return false
	}

	spans, ok := g.compiled.engine.FindCaptures(b)
	if !ok {
		return false
	}
	g.captures = spanStrings(string(b), spans)
	return true
}

// MatchString is like Match but for strings.
func (g *Glob) MatchString(s string) bool {
	return g.Match([]byte(s))
}

// NumCaptures returns the number of captures recorded by the last
// successful Match. It is 0 after a failed match and when capture groups
// are disabled.
func (g *Glob) NumCaptures() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.captures)
}

// Capture returns capture i of the last successful Match. It fails with
// ErrCaptureIndex when i is outside [0, NumCaptures()).
func (g *Glob) Capture(i int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.captures) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrCaptureIndex, i, len(g.captures))
	}
	return g.captures[i], nil
}

// Captures returns a copy of the captures of the last successful Match.
func (g *Glob) Captures() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.captures) == 0 {
		return nil
	}
	return append([]string(nil), g.captures...)
}

// Config returns the current configuration.
func (g *Glob) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.config
}

// SetConfig replaces the configuration and invalidates the compiled
// pattern.
func (g *Glob) SetConfig(config Config) {
	g.update(func(c *Config) { *c = config })
}

func (g *Glob) update(fn func(*Config)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.config)
	g.invalidate()
}

// CaseSensitive reports whether ASCII letters compare exactly.
func (g *Glob) CaseSensitive() bool { return g.Config().CaseSensitive }

// SetCaseSensitive sets case sensitivity.
func (g *Glob) SetCaseSensitive(v bool) { g.update(func(c *Config) { c.CaseSensitive = v }) }

// AllowSave reports whether capture groups are enabled.
func (g *Glob) AllowSave() bool { return g.Config().AllowSave }

// SetAllowSave enables or disables capture groups.
func (g *Glob) SetAllowSave(v bool) { g.update(func(c *Config) { c.AllowSave = v }) }

// AllowOr reports whether top-level alternation is enabled.
func (g *Glob) AllowOr() bool { return g.Config().AllowOr }

// SetAllowOr enables or disables top-level alternation.
func (g *Glob) SetAllowOr(v bool) { g.update(func(c *Config) { c.AllowOr = v }) }

// AllowNonPrintable reports whether bytes outside 0x20-0x7e are accepted
// in the pattern.
func (g *Glob) AllowNonPrintable() bool { return g.Config().AllowNonPrintable }

// SetAllowNonPrintable sets whether non-printable pattern bytes are accepted.
func (g *Glob) SetAllowNonPrintable(v bool) {
	g.update(func(c *Config) { c.AllowNonPrintable = v })
}

// AllowEscape reports whether '\' quotes the next byte.
func (g *Glob) AllowEscape() bool { return g.Config().AllowEscape }

// SetAllowEscape enables or disables backslash escapes.
func (g *Glob) SetAllowEscape(v bool) { g.update(func(c *Config) { c.AllowEscape = v }) }

func isPattern(s string, config Config) bool {
	return prog.IsPattern(s, config.Flags())
}
