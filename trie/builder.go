package trie

import (
	"github.com/coregx/acsearch/internal/conv"
)

// Builder constructs a Trie one pattern at a time.
type Builder struct {
	states       []State
	patternLens  []int
	byteClassSet ByteClassSet
	startBytes   []byte
	startSeen    [256]bool
	hasEmpty     bool
}

// NewBuilder creates a builder holding only the root state.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a builder with room for capacity states.
func NewBuilderWithCapacity(capacity int) *Builder {
	b := &Builder{
		states: make([]State, 1, max(capacity, 1)),
	}
	return b
}

// AddPattern inserts pattern and returns its id. The id is the number of
// patterns added before it, so duplicates receive distinct ids. The pattern
// bytes are not retained.
func (b *Builder) AddPattern(pattern []byte) PatternID {
	id := PatternID(conv.IntToUint32(len(b.patternLens)))
	b.patternLens = append(b.patternLens, len(pattern))

	if len(pattern) == 0 {
		b.hasEmpty = true
	} else if first := pattern[0]; !b.startSeen[first] {
		b.startSeen[first] = true
		b.startBytes = append(b.startBytes, first)
	}

	cur := Root
	for _, c := range pattern {
		st := &b.states[cur]
		i, ok := st.find(c)
		if ok {
			cur = st.trans[i].Next
			continue
		}

		next := StateID(conv.IntToUint32(len(b.states)))
		st.trans = append(st.trans, Transition{})
		copy(st.trans[i+1:], st.trans[i:])
		st.trans[i] = Transition{Byte: c, Next: next}
		depth := st.depth + 1

		// st is invalid after this append.
		b.states = append(b.states, State{depth: depth})
		b.byteClassSet.SetByte(c)
		cur = next
	}

	b.states[cur].terminals = append(b.states[cur].terminals, id)
	return id
}

// Len returns the number of states created so far, including the root.
func (b *Builder) Len() int {
	return len(b.states)
}

// PatternCount returns the number of patterns added so far.
func (b *Builder) PatternCount() int {
	return len(b.patternLens)
}

// Build returns the finished trie. The builder must not be used afterwards.
func (b *Builder) Build() *Trie {
	t := &Trie{
		states:      b.states,
		patternLens: b.patternLens,
		classes:     b.byteClassSet.ByteClasses(),
		startBytes:  b.startBytes,
		hasEmpty:    b.hasEmpty,
	}
	b.states = nil
	b.patternLens = nil
	b.startBytes = nil
	return t
}
