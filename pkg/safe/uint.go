// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Uint32 converts a wire integer to uint32, rejecting negatives and overflow.
func Uint32[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Int converts an int64 to int, rejecting values the platform int cannot hold.
func Int(v int64) (int, error) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(v), nil
}

// NonNegativeInt is Int that also rejects negative values.
func NonNegativeInt(v int64) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d must not be negative", v)
	}
	return Int(v)
}
