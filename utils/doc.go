// SPDX-License-Identifier: EPL-2.0

// Package utils holds the per-sample arithmetic of the conversion pipeline.
//
// Normalize turns a raw 32-bit sample into an amplitude in [-1, 1]:
//
//	utils.Normalize(math.MaxInt32) // 1.0
//	utils.Normalize(math.MinInt32) // -1.0
//	utils.Normalize(0)             // 0.0
//
// Widen moves 8, 16 or 24-bit samples into the 32-bit domain when a caller
// wants lower bit depths to span the full output range.
package utils
