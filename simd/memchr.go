// Package simd provides fast byte and substring search primitives used by the
// matcher's prefilters.
//
// Single-byte search dispatches on CPU features: where the Go runtime's
// bytes.IndexByte is vector accelerated (AVX2 on x86-64, ASIMD on arm64) it is
// used directly, otherwise a SWAR (SIMD Within A Register) loop processes eight
// bytes per iteration. Two- and three-byte searches have no runtime equivalent
// and always use SWAR.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// CPU feature detection flags set at package initialization.
var (
	// hasVectorIndexByte reports whether bytes.IndexByte runs a vector loop
	// on this CPU. On such CPUs the runtime assembly beats SWAR for every
	// input size above a handful of bytes.
	hasVectorIndexByte = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
)

// vectorThreshold is the haystack length above which the vectorised runtime
// search is preferred over the SWAR loop.
const vectorThreshold = 32

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasVectorIndexByte && len(haystack) >= vectorThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or needle2
// in haystack, or -1 if neither is present.
//
// Both needles are tested in the same pass, so this is faster than two
// Memchr calls followed by a min.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2, or needle3
// in haystack, or -1 if none are present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchr3Generic(haystack, needle1, needle2, needle3)
}
