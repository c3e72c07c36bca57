package prefilter

import (
	"sync/atomic"
)

// Tracker wraps a Prefilter with effectiveness tracking.
//
// The tracker counts the subjects it checks and the subjects it rejects.
// When the rejection ratio drops below a threshold, the prefilter mostly
// scans subjects only to hand them to the matcher anyway, so it is retired
// and every later subject goes straight to the matcher.
//
// Algorithm:
//  1. Count checks and rejects
//  2. Every N checks after warmup, compute rejects/checks
//  3. If the ratio is below MinEfficiency, retire the prefilter
//  4. Once retired, never re-enable (until Reset)
//
// A complete prefilter decides matches without the matcher and is never
// retired.
//
// A Tracker is safe for concurrent use.
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	if !tracker.Check(subject) {
//	    return false // rejected, cannot match
//	}
//	return fullMatch(subject)
type Tracker struct {
	inner Prefilter

	checks  atomic.Uint64
	rejects atomic.Uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint atomic.Uint64

	retired atomic.Bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in checks).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of rejects/checks.
	// Default: 0.1 (10%)
	MinEfficiency float64

	// WarmupPeriod is the minimum number of checks before effectiveness
	// is evaluated.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a new tracker for the given prefilter with default config.
//
// Returns nil if the inner prefilter is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a new tracker with custom configuration.
//
// Returns nil if the inner prefilter is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: max(config.CheckInterval, 1),
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
	}
}

// Check reports whether subject can match. It returns true without
// scanning once the prefilter is retired.
func (t *Tracker) Check(subject []byte) bool {
	if t.retired.Load() {
		return true
	}

	ok := Accept(t.inner, subject)
	n := t.checks.Add(1)
	if !ok {
		t.rejects.Add(1)
	}
	t.checkEffectiveness(n)
	return ok
}

// IsActive returns true if the prefilter is still being used.
func (t *Tracker) IsActive() bool {
	return !t.retired.Load()
}

// IsComplete delegates to the inner prefilter's IsComplete.
func (t *Tracker) IsComplete() bool {
	return t.inner.IsComplete()
}

// HeapBytes returns the memory used by the inner prefilter.
func (t *Tracker) HeapBytes() int {
	return t.inner.HeapBytes()
}

// Stats returns the current tracking statistics.
//
// Returns (checks, rejects, efficiency, active).
func (t *Tracker) Stats() (checks, rejects uint64, efficiency float64, active bool) {
	checks = t.checks.Load()
	rejects = t.rejects.Load()
	if checks > 0 {
		efficiency = float64(rejects) / float64(checks)
	}
	active = t.IsActive()
	return
}

// Reset clears statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.checks.Store(0)
	t.rejects.Store(0)
	t.lastCheckpoint.Store(0)
	t.retired.Store(false)
}

// Inner returns the underlying prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

// checkEffectiveness evaluates whether to retire the prefilter after the
// n-th check.
func (t *Tracker) checkEffectiveness(n uint64) {
	if t.inner.IsComplete() || n < t.warmupPeriod {
		return
	}

	last := t.lastCheckpoint.Load()
	if n < last+t.checkInterval {
		return
	}
	if !t.lastCheckpoint.CompareAndSwap(last, n) {
		// Another goroutine is evaluating this interval.
		return
	}

	efficiency := float64(t.rejects.Load()) / float64(n)
	if efficiency < t.minEfficiency {
		t.retired.Store(true)
	}
}
