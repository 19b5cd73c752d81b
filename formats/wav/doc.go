// SPDX-License-Identifier: EPL-2.0

// Package wav provides integer PCM WAV decoding and encoding.
//
// Decoding is built on github.com/go-audio/wav, with a pass over the RIFF
// chunk list (github.com/go-audio/riff) to detect header problems that do
// not prevent reading the samples.
//
// # Supported Formats
//
//   - PCM (format tag 1) and WAVE_FORMAT_EXTENSIBLE containers
//   - 8, 16, 24 and 32 bits per sample
//   - Any channel count and sample rate
//
// Compressed and floating point WAV files are rejected with ErrUnsupportedCodec.
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{IgnoreHeaderWarnings: true}
//	file, _ := os.Open("saw.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // *audio.DecodeError
//	}
//
//	buf := make([]int, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples come back as signed integers at the file's bit depth. 8-bit WAV
// data, stored unsigned, is shifted so that silence is 0.
//
// # Header Warnings
//
// Unknown chunks, size fields that disagree with the stream, a data chunk
// that is shorter than declared or a trailing partial frame are warnings,
// never errors. With IgnoreHeaderWarnings unset they are logged through the
// Decoder's slog.Logger and returned by the source:
//
//	if w, ok := source.(interface{ Warnings() []string }); ok {
//	    fmt.Println(w.Warnings())
//	}
//
// # Writing WAV Files
//
//	file, _ := os.Create("out.wav")
//	err := wav.WritePCM(file, wav.Format{SampleRate: 48000, Channels: 1, BitDepth: 24}, samples)
//
// # Error Handling
//
// Every Decode failure is an *audio.DecodeError wrapping one of:
//   - ErrEmptyInput: zero length input
//   - ErrNotWavFile: no RIFF/WAVE signature
//   - ErrMalformedHeader: the RIFF header could not be read
//   - ErrUnsupportedWavLayout: no usable fmt chunk
//   - ErrUnsupportedCodec: not integer PCM
//   - ErrUnsupportedBitDepth: not 8, 16, 24 or 32 bits
//   - ErrMissingDataChunk: no data chunk
//   - ErrNoSamples: the data chunk is empty
//
// Example:
//
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
package wav
