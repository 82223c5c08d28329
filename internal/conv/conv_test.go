package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	for _, n := range []int{0, 1, 255, 1 << 20, math.MaxInt32} {
		if got := IntToUint32(n); uint64(got) != uint64(n) {
			t.Errorf("IntToUint32(%d) = %d", n, got)
		}
	}
}

func TestIntToUint32PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntToUint32(-1) did not panic")
		}
	}()
	IntToUint32(-1)
}
