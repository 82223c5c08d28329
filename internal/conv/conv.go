// Package conv provides checked integer conversions for state and pattern ids.
//
// The functions panic on overflow: callers validate sizes against configured
// limits first, so an overflow here is a programming error.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms do not overflow math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
