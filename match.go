package acsearch

import (
	"fmt"

	"github.com/coregx/acsearch/automaton"
)

// Match is one occurrence of a pattern in a haystack.
//
// haystack[Start:End] equals pattern PatternIndex, so End-Start is the
// pattern's length. Empty patterns give Start == End.
type Match struct {
	PatternIndex int
	Start        int
	End          int
}

// Len returns the length of the match in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// String returns a human-readable representation of the match.
func (m Match) String() string {
	return fmt.Sprintf("Match{pattern: %d, [%d:%d]}", m.PatternIndex, m.Start, m.End)
}

func fromAutomaton(m automaton.Match) Match {
	return Match{PatternIndex: int(m.Pattern), Start: m.Start, End: m.End}
}
