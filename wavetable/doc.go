// SPDX-License-Identifier: EPL-2.0

// Package wavetable validates wavetable names and serializes normalized
// samples into the .wtd text layout:
//
//	<name>
//	<sample 0>
//	...
//	<sample N-1>
//
// Samples are written as fixed point decimals with eight fractional
// digits ("0.50000000", "-1.00000000"). Lines are separated by '\n' and
// the final line carries no terminator.
package wavetable
