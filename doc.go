// SPDX-License-Identifier: EPL-2.0

// Package waver converts single period PCM recordings into wavetable
// text files (.wtd) for use by wavetable synthesizers.
//
// A conversion runs three stages:
//
//   - decode: a PCM container (WAV by default, see formats/wav and
//     formats/aiff) is parsed and only its first channel is kept;
//   - normalize: every raw sample is mapped into [-1, 1] by
//     utils.Normalize, dividing positive values by math.MaxInt32 and
//     negative values by 2^31;
//   - serialize: the wavetable package writes the name line followed by
//     one sample per line with eight fractional digits.
//
// Raw samples are treated as values of the signed 32-bit domain. A
// 16-bit file therefore produces small amplitudes unless Options.Widen
// is set, which left-justifies each sample to 32 bits first.
//
//	name, err := wavetable.ParseName("my wave")
//	if err != nil {
//	    // ask for another name
//	}
//	err = waver.ConvertFile("input/saw.wav", "output/saw.wtd", name, waver.Options{})
//
// Errors are *audio.DecodeError when the input cannot be decoded and
// *wavetable.WriteError when the destination cannot be written. Decoding
// finishes before the destination is created.
package waver
