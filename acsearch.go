// Package acsearch finds every occurrence of a fixed set of byte-string
// patterns in a haystack with a single left-to-right pass.
//
// acsearch builds an Aho-Corasick automaton from the patterns and reports
// matches with the standard (overlapping) semantics: every occurrence of every
// pattern, including occurrences nested inside or overlapping other matches.
// Offsets are byte offsets, so patterns and haystacks may be arbitrary binary
// data or UTF-8 text alike.
//
// Basic usage:
//
//	s, err := acsearch.New([]string{"he", "she", "his", "hers"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range s.Search("ushers") {
//	    fmt.Println(m.PatternIndex, m.Start, m.End)
//	}
//	// 1 1 4  (she)
//	// 0 2 4  (he)
//	// 3 2 6  (hers)
//
// Matches are ordered by End. Matches sharing an End are ordered longest
// pattern first; patterns of equal content keep their input order.
//
// Advanced usage:
//
//	config := acsearch.DefaultConfig()
//	config.Kind = acsearch.KindNFA // smaller, slower per byte
//	s, err := acsearch.NewWithConfig(patterns, config)
//
// Performance characteristics:
//   - Construction: linear in the total pattern length (times the alphabet
//     size for the DFA table)
//   - Search: one table lookup per haystack byte (DFA) plus the number of
//     matches reported
//   - Prefilter: while no partial match is pending, memchr or memmem skips
//     ahead to the next byte that can start one
package acsearch

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/coregx/acsearch/automaton"
)

// Config controls automaton construction. See automaton.Config.
type Config = automaton.Config

// Kind selects the transition representation. See automaton.Kind.
type Kind = automaton.Kind

// Transition representations.
const (
	KindAuto = automaton.KindAuto
	KindNFA  = automaton.KindNFA
	KindDFA  = automaton.KindDFA
)

// DefaultConfig returns the default construction configuration.
func DefaultConfig() Config {
	return automaton.DefaultConfig()
}

// Stats holds search counters accumulated by a Searcher.
type Stats struct {
	// Searches counts calls that scanned a haystack.
	Searches uint64

	// BytesScanned is the total haystack length searched.
	BytesScanned uint64

	// Matches counts reported matches.
	Matches uint64

	// PrefilterSkips counts haystack bytes jumped over by the prefilter.
	PrefilterSkips uint64

	// PrefilterCandidates counts positions the prefilter jumped to.
	PrefilterCandidates uint64

	// PrefilterConfirmed counts candidates that led to a match.
	PrefilterConfirmed uint64
}

// Searcher is a compiled pattern set.
//
// A Searcher is immutable after construction and safe for concurrent use by
// multiple goroutines. Stats are updated atomically.
//
// Example:
//
//	s := acsearch.MustNew([]string{"error", "warning"})
//	if s.IsMatch([]byte(line)) {
//	    println("interesting line")
//	}
type Searcher struct {
	// stats MUST stay first for 8-byte alignment of the atomic counters on
	// 32-bit platforms.
	stats Stats

	auto *automaton.Automaton
}

// New compiles patterns with the default configuration. Pattern i is
// reported as PatternIndex i. An empty list is valid and never matches.
//
// Example:
//
//	s, err := acsearch.New([]string{"foo", "bar"})
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(patterns []string) (*Searcher, error) {
	return NewWithConfig(patterns, DefaultConfig())
}

// NewBytes compiles byte-slice patterns with the default configuration.
// The patterns are not retained.
func NewBytes(patterns [][]byte) (*Searcher, error) {
	return newSearcher(patterns, DefaultConfig())
}

// NewWithConfig compiles patterns with a custom configuration.
//
// Errors match ErrAutomatonBuild via errors.Is when a configured limit is
// exceeded or the configuration is invalid.
func NewWithConfig(patterns []string, config Config) (*Searcher, error) {
	bs := make([][]byte, len(patterns))
	for i, p := range patterns {
		bs[i] = []byte(p)
	}
	return newSearcher(bs, config)
}

// MustNew is like New but panics if the patterns cannot be compiled.
func MustNew(patterns []string) *Searcher {
	s, err := New(patterns)
	if err != nil {
		panic("acsearch: New: " + err.Error())
	}
	return s
}

func newSearcher(patterns [][]byte, config Config) (*Searcher, error) {
	auto, err := automaton.Build(patterns, config)
	if err != nil {
		return nil, fmt.Errorf("acsearch: %w", err)
	}
	return &Searcher{auto: auto}, nil
}

// Search returns every match in haystack in report order.
func (s *Searcher) Search(haystack string) []Match {
	return s.SearchBytes([]byte(haystack))
}

// SearchBytes returns every match in haystack in report order. A haystack
// without matches yields nil.
func (s *Searcher) SearchBytes(haystack []byte) []Match {
	var matches []Match
	s.run(haystack, func(m automaton.Match) bool {
		matches = append(matches, fromAutomaton(m))
		return true
	})
	return matches
}

// Iter returns an iterator over the matches in haystack. Matches are produced
// lazily; breaking out of the loop stops the scan.
//
// Example:
//
//	for m := range s.Iter(data) {
//	    if m.PatternIndex == stopWord {
//	        break
//	    }
//	}
func (s *Searcher) Iter(haystack []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		s.run(haystack, func(m automaton.Match) bool {
			return yield(fromAutomaton(m))
		})
	}
}

// IsMatch reports whether any pattern occurs in haystack. The scan stops at
// the first match.
func (s *Searcher) IsMatch(haystack []byte) bool {
	found := false
	s.run(haystack, func(automaton.Match) bool {
		found = true
		return false
	})
	return found
}

// Count returns the number of matches in haystack.
func (s *Searcher) Count(haystack []byte) int {
	return s.run(haystack, func(automaton.Match) bool { return true }).Matches
}

// run searches haystack and folds the outcome into the counters.
func (s *Searcher) run(haystack []byte, fn func(automaton.Match) bool) automaton.SearchStats {
	st := s.auto.Search(haystack, fn)
	atomic.AddUint64(&s.stats.Searches, 1)
	atomic.AddUint64(&s.stats.BytesScanned, uint64(len(haystack)))
	atomic.AddUint64(&s.stats.Matches, uint64(st.Matches))
	atomic.AddUint64(&s.stats.PrefilterSkips, uint64(st.Skipped))
	atomic.AddUint64(&s.stats.PrefilterCandidates, uint64(st.Candidates))
	atomic.AddUint64(&s.stats.PrefilterConfirmed, uint64(st.Confirmed))
	return st
}

// PatternCount returns the number of patterns, duplicates included.
func (s *Searcher) PatternCount() int {
	return s.auto.PatternCount()
}

// PatternLen returns the byte length of pattern i.
func (s *Searcher) PatternLen(i int) int {
	return s.auto.PatternLen(automaton.PatternID(i))
}

// Kind returns the transition representation chosen at construction.
func (s *Searcher) Kind() Kind {
	return s.auto.Kind()
}

// Automaton exposes the compiled automaton for inspection.
func (s *Searcher) Automaton() *automaton.Automaton {
	return s.auto
}

// Stats returns a snapshot of the search counters.
//
// Example:
//
//	stats := s.Stats()
//	println("bytes skipped:", stats.PrefilterSkips)
func (s *Searcher) Stats() Stats {
	return Stats{
		Searches:       atomic.LoadUint64(&s.stats.Searches),
		BytesScanned:   atomic.LoadUint64(&s.stats.BytesScanned),
		Matches:        atomic.LoadUint64(&s.stats.Matches),
		PrefilterSkips: atomic.LoadUint64(&s.stats.PrefilterSkips),

		PrefilterCandidates: atomic.LoadUint64(&s.stats.PrefilterCandidates),
		PrefilterConfirmed:  atomic.LoadUint64(&s.stats.PrefilterConfirmed),
	}
}

// ResetStats resets the search counters to zero.
func (s *Searcher) ResetStats() {
	atomic.StoreUint64(&s.stats.Searches, 0)
	atomic.StoreUint64(&s.stats.BytesScanned, 0)
	atomic.StoreUint64(&s.stats.Matches, 0)
	atomic.StoreUint64(&s.stats.PrefilterSkips, 0)
	atomic.StoreUint64(&s.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&s.stats.PrefilterConfirmed, 0)
}
