package acsearch

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// naiveSearch reports matches by direct comparison, in report order.
func naiveSearch(patterns []string, haystack string) []Match {
	var out []Match
	for end := 0; end <= len(haystack); end++ {
		for plen := end; plen >= 0; plen-- {
			for i, p := range patterns {
				if len(p) == plen && haystack[end-plen:end] == p {
					out = append(out, Match{PatternIndex: i, Start: end - plen, End: end})
				}
			}
		}
	}
	return out
}

func TestSearchClassic(t *testing.T) {
	s, err := New([]string{"he", "she", "his", "hers"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := s.Search("ushers")
	want := []Match{
		{PatternIndex: 1, Start: 1, End: 4},
		{PatternIndex: 0, Start: 2, End: 4},
		{PatternIndex: 3, Start: 2, End: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(%q) = %v, want %v", "ushers", got, want)
	}
}

func TestSearchEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		haystack string
	}{
		{"no patterns", nil, "abc"},
		{"empty haystack", []string{"a"}, ""},
		{"empty pattern", []string{""}, "abcd"},
		{"empty pattern and haystack", []string{""}, ""},
		{"pattern is haystack", []string{"haystack"}, "haystack"},
		{"pattern longer than haystack", []string{"haystacks"}, "haystack"},
		{"duplicates", []string{"ab", "ab", "b"}, "abab"},
		{"self overlap", []string{"aa", "aaa"}, "aaaaa"},
		{"binary", []string{"\x00", "\x00\x00", "\xff\xfe"}, "\x00\x00\xff\xfe\x00"},
		{"unicode", []string{"日本", "本語", "語"}, "日本語です"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.patterns)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tt.patterns, err)
			}
			got := s.Search(tt.haystack)
			want := naiveSearch(tt.patterns, tt.haystack)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Search(%q) = %v, want %v", tt.haystack, got, want)
			}
			if n := s.Count([]byte(tt.haystack)); n != len(want) {
				t.Errorf("Count = %d, want %d", n, len(want))
			}
		})
	}
}

func TestEmptyPatternCount(t *testing.T) {
	s := MustNew([]string{""})
	for _, haystack := range []string{"", "a", "hello world"} {
		if got := len(s.Search(haystack)); got != len(haystack)+1 {
			t.Errorf("len(Search(%q)) = %d, want %d", haystack, got, len(haystack)+1)
		}
	}
}

func TestMatchCoversPattern(t *testing.T) {
	patterns := []string{"ab", "bab", "b", "abab"}
	haystack := "babababx"
	s := MustNew(patterns)

	for _, m := range s.Search(haystack) {
		if m.Len() != len(patterns[m.PatternIndex]) {
			t.Errorf("%v: Len() = %d, want %d", m, m.Len(), len(patterns[m.PatternIndex]))
		}
		if s.PatternLen(m.PatternIndex) != m.Len() {
			t.Errorf("%v: PatternLen = %d", m, s.PatternLen(m.PatternIndex))
		}
		if haystack[m.Start:m.End] != patterns[m.PatternIndex] {
			t.Errorf("%v covers %q", m, haystack[m.Start:m.End])
		}
	}
}

func TestSearchKindsAgree(t *testing.T) {
	patterns := []string{"tea", "team", "eam", "am", "m", "mate", "ate"}
	haystack := strings.Repeat("teammate steam ", 20)

	var results [][]Match
	for _, kind := range []Kind{KindNFA, KindDFA} {
		for _, pre := range []bool{true, false} {
			config := DefaultConfig()
			config.Kind = kind
			config.EnablePrefilter = pre
			s, err := NewWithConfig(patterns, config)
			if err != nil {
				t.Fatalf("NewWithConfig failed: %v", err)
			}
			if s.Kind() != kind {
				t.Errorf("Kind() = %v, want %v", s.Kind(), kind)
			}
			results = append(results, s.Search(haystack))
		}
	}
	for i := 1; i < len(results); i++ {
		if !reflect.DeepEqual(results[i], results[0]) {
			t.Errorf("configuration %d disagrees with configuration 0", i)
		}
	}
	if !reflect.DeepEqual(results[0], naiveSearch(patterns, haystack)) {
		t.Error("results differ from direct comparison")
	}
}

func TestNewBytes(t *testing.T) {
	s, err := NewBytes([][]byte{[]byte("\x01\x02"), {}})
	if err != nil {
		t.Fatalf("NewBytes failed: %v", err)
	}
	got := s.SearchBytes([]byte{0x01, 0x02})
	want := []Match{
		{PatternIndex: 1, Start: 0, End: 0},
		{PatternIndex: 1, Start: 1, End: 1},
		{PatternIndex: 0, Start: 0, End: 2},
		{PatternIndex: 1, Start: 2, End: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchBytes = %v, want %v", got, want)
	}
	if s.PatternCount() != 2 {
		t.Errorf("PatternCount() = %d, want 2", s.PatternCount())
	}
}

func TestBuildFailure(t *testing.T) {
	config := DefaultConfig()
	config.MaxStates = 3
	s, err := NewWithConfig([]string{"abcdef"}, config)
	if s != nil {
		t.Error("NewWithConfig returned a searcher alongside an error")
	}
	if !errors.Is(err, ErrAutomatonBuild) {
		t.Fatalf("err = %v, want ErrAutomatonBuild", err)
	}
	if errors.Is(err, ErrInvalidPatternInput) || errors.Is(err, ErrResultEncoding) {
		t.Errorf("err = %v matches more than one error kind", err)
	}
	if !strings.HasPrefix(err.Error(), "acsearch: ") {
		t.Errorf("err = %q, want acsearch prefix", err.Error())
	}

	config = DefaultConfig()
	config.Kind = KindDFA
	config.DFASizeLimit = 16
	if _, err := NewWithConfig([]string{"abc", "xyz"}, config); !errors.Is(err, ErrAutomatonBuild) {
		t.Errorf("dfa over limit: err = %v, want ErrAutomatonBuild", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() != nil {
			t.Error("MustNew panicked on valid input")
		}
	}()
	MustNew([]string{"ok"})
}

func TestIterBreak(t *testing.T) {
	s := MustNew([]string{"a"})
	n := 0
	for m := range s.Iter([]byte("aaaaaaaa")) {
		if m.Start != n {
			t.Errorf("match %d starts at %d", n, m.Start)
		}
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d matches, want 3", n)
	}
}

func TestIsMatch(t *testing.T) {
	s := MustNew([]string{"needle", "pin"})
	tests := []struct {
		haystack string
		want     bool
	}{
		{"haystack with a needle in it", true},
		{"spinning", true},
		{"nothing here", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.IsMatch([]byte(tt.haystack)); got != tt.want {
			t.Errorf("IsMatch(%q) = %v, want %v", tt.haystack, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	s := MustNew([]string{"zebra"})
	haystack := strings.Repeat("a", 100) + "zebra"
	s.Search(haystack)
	s.Count([]byte(haystack))

	st := s.Stats()
	if st.Searches != 2 {
		t.Errorf("Searches = %d, want 2", st.Searches)
	}
	if st.BytesScanned != uint64(2*len(haystack)) {
		t.Errorf("BytesScanned = %d, want %d", st.BytesScanned, 2*len(haystack))
	}
	if st.Matches != 2 {
		t.Errorf("Matches = %d, want 2", st.Matches)
	}
	if st.PrefilterSkips < 200 {
		t.Errorf("PrefilterSkips = %d, want at least 200", st.PrefilterSkips)
	}
	if st.PrefilterCandidates != 2 || st.PrefilterConfirmed != 2 {
		t.Errorf("PrefilterCandidates=%d PrefilterConfirmed=%d, want 2 and 2",
			st.PrefilterCandidates, st.PrefilterConfirmed)
	}

	s.ResetStats()
	if st := s.Stats(); st != (Stats{}) {
		t.Errorf("Stats after reset = %+v", st)
	}
}

func TestConcurrentSearch(t *testing.T) {
	s := MustNew([]string{"he", "she", "his", "hers"})
	haystack := strings.Repeat("ushers and histories ", 100)
	want := s.Search(haystack)
	s.ResetStats()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.Search(haystack); !reflect.DeepEqual(got, want) {
				errs <- "concurrent Search differs"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}

	if got := s.Stats().Searches; got != workers {
		t.Errorf("Searches = %d, want %d", got, workers)
	}
}

func TestMatchString(t *testing.T) {
	m := Match{PatternIndex: 2, Start: 5, End: 9}
	if got, want := m.String(), "Match{pattern: 2, [5:9]}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if m.Len() != 4 {
		t.Errorf("Len() = %d, want 4", m.Len())
	}
}

func BenchmarkSearch(b *testing.B) {
	patterns := []string{"error", "warning", "fatal", "panic", "timeout"}
	haystack := []byte(strings.Repeat("2024-01-01 INFO request served in 12ms\n", 1000) + "2024-01-01 ERROR timeout\n")
	s := MustNew(patterns)

	b.SetBytes(int64(len(haystack)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Count(haystack)
	}
}
