package prefilter

import (
	"testing"
)

// mockPrefilter returns positions from a predefined list.
type mockPrefilter struct {
	positions []int
	idx       int
}

func (m *mockPrefilter) Find(haystack []byte, start int) int {
	for m.idx < len(m.positions) {
		pos := m.positions[m.idx]
		m.idx++
		if pos >= start {
			return pos
		}
	}
	return -1
}

func (m *mockPrefilter) HeapBytes() int { return 0 }

func sequence(n int) []int {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	return positions
}

func TestTrackerBasic(t *testing.T) {
	mock := &mockPrefilter{positions: []int{5, 10, 15, 20}}
	tracker := NewTracker(mock, DefaultTrackerConfig())

	if !tracker.IsActive() {
		t.Error("Tracker should be active initially")
	}

	if pos := tracker.Find([]byte("test input"), 0); pos != 5 {
		t.Errorf("Find() = %d, want 5", pos)
	}

	candidates, confirms := tracker.Stats()
	if candidates != 1 {
		t.Errorf("candidates = %d, want 1", candidates)
	}
	if confirms != 0 {
		t.Errorf("confirms = %d, want 0", confirms)
	}
	if !tracker.IsActive() {
		t.Error("Should still be active")
	}

	tracker.ConfirmMatch()
	if _, confirms = tracker.Stats(); confirms != 1 {
		t.Errorf("confirms = %d, want 1", confirms)
	}
}

func TestTrackerDisablesOnLowEfficiency(t *testing.T) {
	mock := &mockPrefilter{positions: sequence(200)}
	tracker := NewTracker(mock, TrackerConfig{
		CheckInterval: 10,
		MinEfficiency: 0.1,
		WarmupPeriod:  50,
	})

	haystack := make([]byte, 300)
	for i := 0; i < 200; i++ {
		if tracker.Find(haystack, i) == -1 {
			break
		}
	}

	if tracker.IsActive() {
		t.Error("Tracker should be disabled after 0% efficiency")
	}
	if pos := tracker.Find(haystack, 0); pos != -1 {
		t.Errorf("Find() = %d when disabled, want -1", pos)
	}
}

func TestTrackerStaysActiveOnHighEfficiency(t *testing.T) {
	mock := &mockPrefilter{positions: sequence(200)}
	tracker := NewTracker(mock, TrackerConfig{
		CheckInterval: 10,
		MinEfficiency: 0.1,
		WarmupPeriod:  50,
	})

	haystack := make([]byte, 300)
	for i := 0; i < 200; i++ {
		if tracker.Find(haystack, i) == -1 {
			break
		}
		if i%2 == 0 {
			tracker.ConfirmMatch()
		}
	}

	if !tracker.IsActive() {
		t.Error("Tracker should still be active with 50% efficiency")
	}
}

func TestTrackerWarmupPeriod(t *testing.T) {
	mock := &mockPrefilter{positions: sequence(100)}
	tracker := NewTracker(mock, TrackerConfig{
		CheckInterval: 1,
		MinEfficiency: 0.5,
		WarmupPeriod:  50,
	})

	haystack := make([]byte, 200)
	for i := 0; i < 40; i++ {
		tracker.Find(haystack, i)
	}
	if !tracker.IsActive() {
		t.Error("Tracker should still be active during warmup")
	}

	for i := 40; i < 100; i++ {
		tracker.Find(haystack, i)
	}
	if tracker.IsActive() {
		t.Error("Tracker should be disabled after warmup with 0% efficiency")
	}
}

func TestTrackerStatsAfterRetire(t *testing.T) {
	mock := &mockPrefilter{positions: sequence(300)}
	tracker := NewTracker(mock, TrackerConfig{
		CheckInterval: 1,
		MinEfficiency: 0.5,
		WarmupPeriod:  10,
	})

	haystack := make([]byte, 300)
	for i := 0; i < 20; i++ {
		tracker.Find(haystack, i)
	}
	if tracker.IsActive() {
		t.Fatal("Tracker should be disabled")
	}

	// Retired on the tenth candidate; later calls are not counted.
	candidates, confirms := tracker.Stats()
	if candidates != 10 || confirms != 0 {
		t.Errorf("Stats() = (%d, %d), want (10, 0)", candidates, confirms)
	}
}

func TestTrackerNilInner(t *testing.T) {
	if NewTracker(nil, DefaultTrackerConfig()) != nil {
		t.Error("NewTracker(nil) should return nil")
	}
}
