package automaton

import (
	"iter"

	"github.com/coregx/acsearch/prefilter"
)

// Match is one occurrence of a pattern: haystack[Start:End] equals the
// pattern's bytes.
type Match struct {
	Pattern PatternID
	Start   int
	End     int
}

// SearchStats describes a finished search.
type SearchStats struct {
	// Matches is the number of matches reported.
	Matches int

	// Skipped is the number of haystack bytes the prefilter jumped over.
	Skipped int

	// Candidates is the number of positions the prefilter jumped to.
	Candidates int

	// Confirmed is the number of candidates that led to a match before the
	// search fell back to the root state.
	Confirmed int

	// PrefilterRetired reports whether the prefilter was abandoned midway
	// for producing too many fruitless candidates.
	PrefilterRetired bool
}

// Search runs a standard overlapping search over haystack and calls fn for
// every match in order of increasing End. Matches sharing an End are reported
// in output-list order: the longer pattern's own state first, then what its
// failure chain recognizes. Returning false from fn stops the search.
//
// Empty patterns match at every offset, including 0 before any input.
func (a *Automaton) Search(haystack []byte, fn func(Match) bool) (stats SearchStats) {
	if !a.emit(Root, 0, fn, &stats) {
		return stats
	}

	var tracker *prefilter.Tracker
	if a.prefilter != nil {
		tracker = prefilter.NewTracker(a.prefilter, prefilter.DefaultTrackerConfig())
		defer func() {
			candidates, confirms := tracker.Stats()
			stats.Candidates, stats.Confirmed = int(candidates), int(confirms)
			stats.PrefilterRetired = !tracker.IsActive()
		}()
	}
	// pending is set while a prefilter candidate has not yet led to a match.
	pending := false
	skipping := tracker != nil

	state := Root
	for i := 0; i < len(haystack); i++ {
		if state == Root && skipping {
			if !tracker.IsActive() {
				skipping, pending = false, false
			} else {
				cand := tracker.Find(haystack, i)
				if cand < 0 {
					stats.Skipped += len(haystack) - i
					break
				}
				stats.Skipped += cand - i
				i = cand
				pending = true
			}
		}

		state = a.NextState(state, haystack[i])
		if a.outStart[state] != a.outEnd[state] {
			if pending {
				tracker.ConfirmMatch()
				pending = false
			}
			if !a.emit(state, i+1, fn, &stats) {
				return stats
			}
		}
	}
	return stats
}

// emit reports the output list of s as matches ending at end.
func (a *Automaton) emit(s StateID, end int, fn func(Match) bool, stats *SearchStats) bool {
	for _, p := range a.outputs[a.outStart[s]:a.outEnd[s]] {
		stats.Matches++
		if !fn(Match{Pattern: p, Start: end - a.patternLens[p], End: end}) {
			return false
		}
	}
	return true
}

// FindAll returns every match in haystack in report order.
func (a *Automaton) FindAll(haystack []byte) []Match {
	var matches []Match
	a.Search(haystack, func(m Match) bool {
		matches = append(matches, m)
		return true
	})
	return matches
}

// Iter returns an iterator over every match in haystack.
//
// Example:
//
//	for m := range a.Iter(haystack) {
//	    fmt.Println(m.Pattern, m.Start, m.End)
//	}
func (a *Automaton) Iter(haystack []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		a.Search(haystack, yield)
	}
}

// IsMatch reports whether any pattern occurs in haystack. It stops at the
// first match.
func (a *Automaton) IsMatch(haystack []byte) bool {
	found := false
	a.Search(haystack, func(Match) bool {
		found = true
		return false
	})
	return found
}

// Count returns the number of matches in haystack without collecting them.
func (a *Automaton) Count(haystack []byte) int {
	return a.Search(haystack, func(Match) bool { return true }).Matches
}
