package simd

import (
	"encoding/binary"
	"math/bits"
)

// SWAR constants: lo8 has 0x01 in every byte, hi8 has 0x80 in every byte.
const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes returns a word whose high bit is set in every byte of v that is
// zero (Hacker's Delight). Bits above the first zero byte may be spurious,
// so only the lowest set bit is meaningful.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) &^ v & hi8
}

// memchrGeneric finds needle eight bytes at a time: the needle is broadcast
// into every byte of a word, XORed with the input chunk, and the first zero
// byte of the result is the first match.
func memchrGeneric(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	mask := uint64(needle) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ mask); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// memchr2Generic is memchrGeneric for two needles.
func memchr2Generic(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if b := haystack[i]; b == needle1 || b == needle2 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}

// memchr3Generic is memchrGeneric for three needles.
func memchr3Generic(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if b := haystack[i]; b == needle1 || b == needle2 || b == needle3 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	mask3 := uint64(needle3) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2) | zeroBytes(chunk^mask3)
		if z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 || b == needle3 {
			return i
		}
	}
	return -1
}
