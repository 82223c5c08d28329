package prefilter

// Tracker wraps a Prefilter and watches how often its candidates pay off
// during one search.
//
// Each position returned by Find is a candidate: the matcher jumps there from
// the root state. The candidate is confirmed when the matcher reports a match
// before it falls back to the root state again. Once WarmupPeriod candidates
// have been seen, the confirmed share is rechecked every CheckInterval
// candidates; if it drops below MinEfficiency, Find stops returning
// candidates and the matcher scans byte by byte for the rest of the search.
//
// A Tracker holds per-search state and must not be shared between
// goroutines. The wrapped Prefilter may be.
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig controls when a Tracker retires its prefilter.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between two checks.
	CheckInterval uint64

	// MinEfficiency is the lowest confirmed share of candidates that keeps
	// the prefilter in use.
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the configuration used by the automaton
// search: check every 64 candidates after 128, retire below 10%.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker for inner. Returns nil if inner is nil.
func NewTracker(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate position, or -1 if none exists or the
// tracker is disabled. A returned candidate is always valid even if the call
// retired the prefilter.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the last candidate led to a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the number of candidates returned and confirmed so far.
func (t *Tracker) Stats() (candidates, confirms uint64) {
	return t.candidates, t.confirms
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if float64(t.confirms)/float64(t.candidates) < t.minEfficiency {
		t.active = false
	}
}
