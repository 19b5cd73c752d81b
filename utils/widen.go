// SPDX-License-Identifier: EPL-2.0

package utils

// Widen promotes a signed sample of the given bit depth into the 32-bit
// domain by left-justifying it. Depths outside (0, 32) are returned
// truncated to int32 unchanged.
func Widen(v int, bitDepth int) int32 {
	if bitDepth <= 0 || bitDepth >= 32 {
		return int32(v)
	}

	return int32(v) << (32 - bitDepth)
}
