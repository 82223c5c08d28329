// Package automaton compiles a pattern trie into an Aho-Corasick automaton
// and runs standard (overlapping) searches with it.
//
// The automaton adds to the trie:
//   - a failure link per state: the state of the longest proper suffix of its
//     prefix that is also a trie prefix
//   - a complete output list per state: its own patterns followed by every
//     pattern recognized along its failure chain
//   - optionally, a dense transition table that resolves failure links ahead
//     of time (KindDFA)
//
// A compiled Automaton is immutable. Any number of goroutines may search it
// at once; each search keeps its cursor in local variables.
package automaton

import (
	"github.com/coregx/acsearch/prefilter"
	"github.com/coregx/acsearch/trie"
)

// StateID identifies an automaton state. Ids are the trie ids.
type StateID = trie.StateID

// PatternID identifies a pattern by input position.
type PatternID = trie.PatternID

// Root is the start state.
const Root = trie.Root

// Automaton is a compiled Aho-Corasick automaton.
type Automaton struct {
	kind    Kind
	classes trie.ByteClasses
	stride  int

	// Sparse transitions of state s are trans[transStart[s]:transStart[s+1]],
	// sorted by byte.
	trans      []trie.Transition
	transStart []uint32

	fail []StateID

	// Output list of s is outputs[outStart[s]:outEnd[s]]. States without
	// terminals of their own share their failure target's range.
	outputs  []PatternID
	outStart []uint32
	outEnd   []uint32

	// dense[s*stride+class] is the total transition function. Nil for KindNFA.
	dense []StateID

	patternLens []int
	prefilter   prefilter.Prefilter
}

// Kind returns the transition representation in use. Never KindAuto.
func (a *Automaton) Kind() Kind {
	return a.kind
}

// StateCount returns the number of states, including the root.
func (a *Automaton) StateCount() int {
	return len(a.fail)
}

// PatternCount returns the number of patterns.
func (a *Automaton) PatternCount() int {
	return len(a.patternLens)
}

// PatternLen returns the length in bytes of pattern id.
func (a *Automaton) PatternLen(id PatternID) int {
	return a.patternLens[id]
}

// AlphabetLen returns the number of byte classes (dense table columns).
func (a *Automaton) AlphabetLen() int {
	return a.stride
}

// ByteClasses returns the byte-to-class mapping.
func (a *Automaton) ByteClasses() trie.ByteClasses {
	return a.classes
}

// Fail returns the failure target of s. Fail(Root) is Root.
func (a *Automaton) Fail(s StateID) StateID {
	return a.fail[s]
}

// Outputs returns the patterns recognized on entering s, in report order.
// The slice must not be modified.
func (a *Automaton) Outputs(s StateID) []PatternID {
	return a.outputs[a.outStart[s]:a.outEnd[s]]
}

// Prefilter returns the prefilter used while in the root state, or nil.
func (a *Automaton) Prefilter() prefilter.Prefilter {
	return a.prefilter
}

// NextState returns the state reached from s on byte b, following failure
// links where the trie has no edge.
func (a *Automaton) NextState(s StateID, b byte) StateID {
	if a.dense != nil {
		return a.dense[int(s)*a.stride+int(a.classes.Get(b))]
	}
	return a.nextNFA(s, b)
}

// nextNFA resolves a transition by walking the failure chain until some
// state has an explicit edge on b. The root absorbs everything else.
func (a *Automaton) nextNFA(s StateID, b byte) StateID {
	for {
		if next, ok := a.explicit(s, b); ok {
			return next
		}
		if s == Root {
			return Root
		}
		s = a.fail[s]
	}
}

// explicit looks up the trie edge of s on b.
func (a *Automaton) explicit(s StateID, b byte) (StateID, bool) {
	edges := a.trans[a.transStart[s]:a.transStart[s+1]]
	// Most states have one or two edges; binary search only pays off on
	// wide states such as the root.
	if len(edges) <= 8 {
		for _, e := range edges {
			if e.Byte == b {
				return e.Next, true
			}
			if e.Byte > b {
				break
			}
		}
		return trie.InvalidState, false
	}
	lo, hi := 0, len(edges)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if edges[mid].Byte < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(edges) && edges[lo].Byte == b {
		return edges[lo].Next, true
	}
	return trie.InvalidState, false
}

// MemoryUsage returns the approximate heap size of the automaton in bytes.
func (a *Automaton) MemoryUsage() int {
	const stateID = 4
	n := len(a.trans)*8 +
		len(a.transStart)*4 +
		len(a.fail)*stateID +
		len(a.outputs)*4 +
		(len(a.outStart)+len(a.outEnd))*4 +
		len(a.dense)*stateID +
		len(a.patternLens)*8
	if a.prefilter != nil {
		n += a.prefilter.HeapBytes()
	}
	return n
}
