// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files into integer samples.
//
// Parsing is delegated to github.com/go-audio/aiff. The decoder accepts
// 8, 16, 24 and 32 bit PCM in any channel count and sample rate and
// returns an audio.Source whose samples are signed integers in the range
// of the file's bit depth. AIFF-C compressed files are rejected.
//
// All errors returned by Decode and ReadSamples are *audio.DecodeError
// values with Format "aiff", wrapping one of the sentinel errors of this
// package or the underlying read failure:
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF stream
//	}
package aiff
