package prefilter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPrefilter finds a candidate at 0 when accept is set.
type mockPrefilter struct {
	accept   bool
	complete bool
}

func (m *mockPrefilter) Find(haystack []byte, start int) int {
	if m.accept {
		return 0
	}
	return -1
}

func (m *mockPrefilter) IsComplete() bool { return m.complete }
func (m *mockPrefilter) LiteralLen() int  { return 0 }
func (m *mockPrefilter) HeapBytes() int   { return 16 }

var testTrackerConfig = TrackerConfig{
	CheckInterval: 10,
	MinEfficiency: 0.5,
	WarmupPeriod:  20,
}

func TestTrackerNil(t *testing.T) {
	assert.Nil(t, NewTracker(nil))
}

func TestTrackerRetiresIneffective(t *testing.T) {
	tracker := NewTrackerWithConfig(&mockPrefilter{accept: true}, testTrackerConfig)
	require.True(t, tracker.IsActive())

	for range 19 {
		assert.True(t, tracker.Check([]byte("x")))
	}
	assert.True(t, tracker.IsActive(), "still in warmup")

	tracker.Check([]byte("x"))
	assert.False(t, tracker.IsActive())

	checks, rejects, eff, active := tracker.Stats()
	assert.Equal(t, uint64(20), checks)
	assert.Equal(t, uint64(0), rejects)
	assert.Equal(t, 0.0, eff)
	assert.False(t, active)

	// Retired trackers accept without counting.
	assert.True(t, tracker.Check([]byte("x")))
	checks, _, _, _ = tracker.Stats()
	assert.Equal(t, uint64(20), checks)
}

func TestTrackerKeepsEffective(t *testing.T) {
	tracker := NewTrackerWithConfig(&mockPrefilter{accept: false}, testTrackerConfig)

	for range 100 {
		assert.False(t, tracker.Check([]byte("x")))
	}
	checks, rejects, eff, active := tracker.Stats()
	assert.Equal(t, uint64(100), checks)
	assert.Equal(t, uint64(100), rejects)
	assert.Equal(t, 1.0, eff)
	assert.True(t, active)
}

func TestTrackerNeverRetiresComplete(t *testing.T) {
	tracker := NewTrackerWithConfig(&mockPrefilter{accept: true, complete: true}, testTrackerConfig)

	for range 100 {
		tracker.Check(nil)
	}
	assert.True(t, tracker.IsActive())
	assert.True(t, tracker.IsComplete())
}

func TestTrackerReset(t *testing.T) {
	tracker := NewTrackerWithConfig(&mockPrefilter{accept: true}, testTrackerConfig)
	for range 30 {
		tracker.Check([]byte("x"))
	}
	require.False(t, tracker.IsActive())

	tracker.Reset()
	checks, rejects, _, active := tracker.Stats()
	assert.Equal(t, uint64(0), checks)
	assert.Equal(t, uint64(0), rejects)
	assert.True(t, active)
	assert.Equal(t, 16, tracker.HeapBytes())
	assert.NotNil(t, tracker.Inner())
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := NewTracker(&mockPrefilter{accept: false})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				tracker.Check([]byte("x"))
			}
		}()
	}
	wg.Wait()

	checks, rejects, _, active := tracker.Stats()
	assert.Equal(t, uint64(8000), checks)
	assert.Equal(t, uint64(8000), rejects)
	assert.True(t, active)
}
