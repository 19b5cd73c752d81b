// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const (
	positiveScale = float64(math.MaxInt32)
	negativeScale = -float64(math.MinInt32)
)

// Normalize maps a sample from the signed 32-bit domain into [-1, 1].
// Positive and negative values are scaled by their own bound, so
// math.MaxInt32 yields exactly 1.0 and math.MinInt32 exactly -1.0.
func Normalize(num int32) float64 {
	switch {
	case num > 0:
		return float64(num) / positiveScale
	case num < 0:
		return float64(num) / negativeScale
	default:
		return 0
	}
}

// NormalizeAll normalizes every sample of raw into a new slice.
func NormalizeAll(raw []int32) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = Normalize(v)
	}

	return out
}
