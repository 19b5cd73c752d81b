// SPDX-License-Identifier: EPL-2.0

// Package audio provides the integer PCM primitives shared by the decoders.
//
// This package contains:
//   - Source interface for decoded PCM input
//   - ChannelPicker for single channel extraction
//   - Collect for draining a Source into memory
//   - Format registry for decoder registration
//   - DecodeError, the failure type every decoder returns
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []int) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved integers at the container's native bit depth.
// 8-bit data is signed, centred on zero.
//
// # Channel Extraction
//
// ChannelPicker keeps one channel and drops the rest. It never mixes:
//
//	left, err := audio.NewLeftChannel(source)
//	samples, err := audio.Collect(left, 4096)
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// Keys are matched case-insensitively and a leading dot is ignored, so a
// filepath.Ext result can be used directly.
//
// # Errors
//
// Decoders report unparseable input as *DecodeError, which wraps a format
// specific sentinel:
//
//	var de *audio.DecodeError
//	if errors.As(err, &de) {
//	    fmt.Println("not a usable", de.Format, "file:", de.Err)
//	}
package audio
