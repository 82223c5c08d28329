// Package trie builds the prefix tree that underlies an Aho-Corasick
// automaton.
//
// Every distinct prefix of the inserted patterns gets exactly one state. The
// root represents the empty prefix. Ids are handed out in insertion order, so
// building from the same pattern list always yields the same numbering.
package trie

import "sort"

// PatternID identifies a pattern by its zero-based position in the input list.
type PatternID uint32

// StateID identifies a trie state. States are stored in a flat table indexed
// by id.
type StateID uint32

const (
	// Root is the state of the empty prefix.
	Root StateID = 0

	// InvalidState marks the absence of a state.
	InvalidState StateID = 0xFFFFFFFF
)

// Transition is an explicit trie edge.
type Transition struct {
	Byte byte
	Next StateID
}

// State is a node of the trie.
type State struct {
	// trans holds the explicit edges sorted by byte.
	trans []Transition

	// terminals holds the patterns ending here, in insertion order.
	terminals []PatternID

	depth int
}

// find returns the index of the edge labelled b, or the position where it
// would be inserted.
func (s *State) find(b byte) (int, bool) {
	i := sort.Search(len(s.trans), func(i int) bool { return s.trans[i].Byte >= b })
	return i, i < len(s.trans) && s.trans[i].Byte == b
}

// Trie is an immutable prefix tree over a pattern set.
//
// Pattern bytes are not retained; only their lengths are.
type Trie struct {
	states      []State
	patternLens []int
	classes     ByteClasses
	startBytes  []byte
	hasEmpty    bool
}

// Len returns the number of states, including the root.
func (t *Trie) Len() int {
	return len(t.states)
}

// PatternCount returns the number of inserted patterns.
func (t *Trie) PatternCount() int {
	return len(t.patternLens)
}

// PatternLen returns the length in bytes of pattern id.
func (t *Trie) PatternLen(id PatternID) int {
	return t.patternLens[id]
}

// PatternLens returns the lengths of all patterns indexed by PatternID.
// The slice must not be modified.
func (t *Trie) PatternLens() []int {
	return t.patternLens
}

// Next returns the explicit transition of s on b, if any.
func (t *Trie) Next(s StateID, b byte) (StateID, bool) {
	st := &t.states[s]
	i, ok := st.find(b)
	if !ok {
		return InvalidState, false
	}
	return st.trans[i].Next, true
}

// Transitions returns the explicit edges of s sorted by byte.
// The slice must not be modified.
func (t *Trie) Transitions(s StateID) []Transition {
	return t.states[s].trans
}

// Terminals returns the patterns that end exactly at s, in insertion order.
// The slice must not be modified.
func (t *Trie) Terminals(s StateID) []PatternID {
	return t.states[s].terminals
}

// Depth returns the length of the prefix spelled by s.
func (t *Trie) Depth(s StateID) int {
	return t.states[s].depth
}

// ByteClasses returns the alphabet partition induced by the trie edges.
func (t *Trie) ByteClasses() ByteClasses {
	return t.classes
}

// StartBytes returns the distinct first bytes of all non-empty patterns, in
// the order they were first seen.
func (t *Trie) StartBytes() []byte {
	return t.startBytes
}

// HasEmptyPattern reports whether any pattern is the empty string.
func (t *Trie) HasEmptyPattern() bool {
	return t.hasEmpty
}
