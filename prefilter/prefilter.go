// Package prefilter finds candidate match starts faster than the automaton
// can scan for them.
//
// While the matcher sits in the root state, no partial match is pending and
// every future match starts at or after the current position. A prefilter
// returns the next position where a match could start, and the matcher jumps
// straight there. Strategies, selected from the trie:
//   - One distinct non-empty pattern → Substring (memmem on the rarest byte)
//   - Up to three distinct start bytes → StartBytes (memchr/memchr2/memchr3)
//   - Anything else → nil (no prefilter)
//
// Example usage:
//
//	pf := prefilter.New(tr)
//	if pf != nil {
//	    pos := pf.Find(haystack, 0)
//	    // no match starts in haystack[:pos]
//	}
package prefilter

import (
	"github.com/coregx/acsearch/simd"
	"github.com/coregx/acsearch/trie"
)

// Prefilter reports candidate match starts.
//
// Implementations are immutable and safe for concurrent use.
type Prefilter interface {
	// Find returns the first position >= start where a match may begin, or -1
	// if no match can begin in haystack[start:]. start must be in
	// [0, len(haystack)].
	Find(haystack []byte, start int) int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int
}

// maxStartByteRank rejects start byte sets containing a byte at least this
// common in typical text. Candidates on nearly every position cost more than
// they skip.
const maxStartByteRank = 230

// New selects a prefilter for the patterns in tr, or returns nil when none
// would help. Empty patterns match at every position, so their presence
// disables prefiltering entirely.
func New(tr *trie.Trie) Prefilter {
	if tr.PatternCount() == 0 || tr.HasEmptyPattern() {
		return nil
	}
	if needle, ok := singleNeedle(tr); ok {
		return NewSubstring(needle)
	}

	start := tr.StartBytes()
	if len(start) > 3 {
		return nil
	}
	for _, b := range start {
		if simd.ByteRank(b) >= maxStartByteRank {
			return nil
		}
	}
	return NewStartBytes(start)
}

// singleNeedle reports whether the trie holds exactly one distinct pattern,
// and returns its bytes. That is the case when the trie is a single chain
// whose only terminal state is its last one.
func singleNeedle(tr *trie.Trie) ([]byte, bool) {
	var needle []byte
	cur := trie.Root
	for {
		trans := tr.Transitions(cur)
		if len(trans) == 0 {
			break
		}
		if len(trans) > 1 || len(tr.Terminals(cur)) > 0 {
			return nil, false
		}
		needle = append(needle, trans[0].Byte)
		cur = trans[0].Next
	}
	return needle, len(needle) > 0
}

// StartBytes finds the next occurrence of any of up to three bytes.
type StartBytes struct {
	bytes [3]byte
	n     int
}

// NewStartBytes creates a StartBytes prefilter. set must hold 1 to 3 bytes.
func NewStartBytes(set []byte) *StartBytes {
	if len(set) == 0 || len(set) > 3 {
		panic("prefilter: StartBytes needs 1 to 3 bytes")
	}
	p := &StartBytes{n: len(set)}
	copy(p.bytes[:], set)
	return p
}

// Find implements Prefilter.
func (p *StartBytes) Find(haystack []byte, start int) int {
	var pos int
	switch p.n {
	case 1:
		pos = simd.Memchr(haystack[start:], p.bytes[0])
	case 2:
		pos = simd.Memchr2(haystack[start:], p.bytes[0], p.bytes[1])
	default:
		pos = simd.Memchr3(haystack[start:], p.bytes[0], p.bytes[1], p.bytes[2])
	}
	if pos < 0 {
		return -1
	}
	return start + pos
}

// HeapBytes implements Prefilter.
func (p *StartBytes) HeapBytes() int {
	return 0
}

// Bytes returns the start bytes searched for.
func (p *StartBytes) Bytes() []byte {
	return append([]byte(nil), p.bytes[:p.n]...)
}

// Substring finds the next full occurrence of a single needle.
type Substring struct {
	finder *simd.Finder
}

// NewSubstring creates a Substring prefilter for a non-empty needle.
func NewSubstring(needle []byte) *Substring {
	return &Substring{finder: simd.NewFinder(needle)}
}

// Find implements Prefilter.
func (p *Substring) Find(haystack []byte, start int) int {
	pos := p.finder.Find(haystack[start:])
	if pos < 0 {
		return -1
	}
	return start + pos
}

// HeapBytes implements Prefilter.
func (p *Substring) HeapBytes() int {
	return len(p.finder.Needle())
}

// Needle returns the searched substring.
func (p *Substring) Needle() []byte {
	return p.finder.Needle()
}
