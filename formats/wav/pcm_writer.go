// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidFormat is returned by WritePCM for impossible format parameters.
var ErrInvalidFormat = errors.New("invalid PCM format")

// Format describes the layout WritePCM produces.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// WritePCM writes an integer PCM WAV file with a canonical 44 byte header.
// samples are interleaved, signed, and at f.BitDepth (8-bit values are
// stored offset by 128 as the format requires). Values are truncated to the
// bit depth without clamping.
func WritePCM(w io.Writer, f Format, samples []int) error {
	if f.Channels < 1 || f.SampleRate < 1 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, f.Channels, f.SampleRate)
	}
	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per sample", ErrInvalidFormat, f.BitDepth)
	}
	if len(samples)%f.Channels != 0 {
		return fmt.Errorf("%w: %d samples is not a whole number of %d channel frames",
			ErrInvalidFormat, len(samples), f.Channels)
	}

	bytesPerSample := f.BitDepth / 8
	blockAlign := uint16(f.Channels * bytesPerSample)
	byteRate := uint32(f.SampleRate) * uint32(blockAlign)
	dataSize := uint32(len(samples) * bytesPerSample)
	pad := dataSize % 2
	riffSize := 36 + dataSize + pad

	// Pre-allocate buffer for entire header (44 bytes)
	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitDepth))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	// Write 8KB worth of samples at a time
	const chunkSize = 8192
	buf := make([]byte, 0, min(len(samples), chunkSize)*bytesPerSample+int(pad))

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		buf = buf[:0]

		for _, s := range samples[i:end] {
			buf = appendSample(buf, s, f.BitDepth)
		}
		if end == len(samples) && pad == 1 {
			buf = append(buf, 0)
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}
	}

	return nil
}

func appendSample(buf []byte, s int, bitDepth int) []byte {
	switch bitDepth {
	case 8:
		return append(buf, byte(s+128))
	case 16:
		return binary.LittleEndian.AppendUint16(buf, uint16(int16(s)))
	case 24:
		v := uint32(int32(s))
		return append(buf, byte(v), byte(v>>8), byte(v>>16))
	default:
		return binary.LittleEndian.AppendUint32(buf, uint32(int32(s)))
	}
}
