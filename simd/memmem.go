package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// The rarest byte of needle (by ByteRank) is located with Memchr and each
// candidate is verified in place. An empty needle matches at 0, like
// bytes.Index.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	if needleLen == 0 {
		return 0
	}
	if needleLen > haystackLen {
		return -1
	}
	if needleLen == 1 {
		return Memchr(haystack, needle[0])
	}

	rare, rareIdx := RarestByte(needle)
	return memmemRare(haystack, needle, rare, rareIdx)
}

// memmemRare is Memmem with a precomputed rare byte. Callers that search the
// same needle repeatedly keep rare/rareIdx around to skip the selection.
func memmemRare(haystack, needle []byte, rare byte, rareIdx int) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	// The rare byte can never sit before rareIdx.
	searchStart := rareIdx
	for searchStart < haystackLen {
		pos := Memchr(haystack[searchStart:], rare)
		if pos == -1 {
			return -1
		}
		pos += searchStart

		start := pos - rareIdx
		if start+needleLen > haystackLen {
			return -1
		}
		if bytes.Equal(haystack[start:start+needleLen], needle) {
			return start
		}
		searchStart = pos + 1
	}
	return -1
}

// Finder searches for a fixed needle, caching its rare byte selection.
// A Finder is immutable and safe for concurrent use.
type Finder struct {
	needle  []byte
	rare    byte
	rareIdx int
}

// NewFinder returns a Finder for needle. The needle is copied.
func NewFinder(needle []byte) *Finder {
	f := &Finder{needle: append([]byte(nil), needle...)}
	if len(needle) > 0 {
		f.rare, f.rareIdx = RarestByte(needle)
	}
	return f
}

// Needle returns the needle this Finder searches for.
func (f *Finder) Needle() []byte {
	return f.needle
}

// Find returns the index of the first occurrence of the needle in haystack,
// or -1.
func (f *Finder) Find(haystack []byte) int {
	switch len(f.needle) {
	case 0:
		return 0
	case 1:
		return Memchr(haystack, f.needle[0])
	}
	if len(f.needle) > len(haystack) {
		return -1
	}
	return memmemRare(haystack, f.needle, f.rare, f.rareIdx)
}
