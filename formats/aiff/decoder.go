// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/waver/audio"
)

const formatName = "aiff"

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	// remaining is the number of samples the COMM chunk still promises,
	// negative when unknown.
	remaining int
	intBuf    *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.remaining == 0 {
		return 0, io.EOF
	}

	want := len(dst)
	if s.remaining > 0 {
		want = min(want, s.remaining)
	}

	// Resize buffer if needed
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, audio.NewDecodeError(formatName, err)
		}
		return 0, io.EOF
	}

	// go-audio hands 8-bit samples back as raw bytes; AIFF stores them
	// as two's complement.
	if s.bitDepth == 8 {
		for i, v := range s.intBuf.Data[:n] {
			dst[i] = int(int8(v))
		}
	} else {
		copy(dst, s.intBuf.Data[:n])
	}

	if s.remaining > 0 {
		s.remaining -= n
	}

	// If we got fewer samples than requested and no error, we're at EOF
	if (n < len(dst) || s.remaining == 0) && err == nil {
		return n, io.EOF
	}
	if err != nil && err != io.EOF {
		return n, audio.NewDecodeError(formatName, err)
	}

	return n, err
}

// Decoder reads PCM AIFF files of 8, 16, 24 or 32 bits per sample.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker, and the whole input is buffered
	// so empty streams are reported before any parsing happens.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, audio.NewDecodeError(formatName, fmt.Errorf("reading aiff data: %w", err))
	}
	if len(data) == 0 {
		return nil, audio.NewDecodeError(formatName, ErrEmptyInput)
	}

	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, audio.NewDecodeError(formatName, ErrNotAiffFile)
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, audio.NewDecodeError(formatName, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth))
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, audio.NewDecodeError(formatName, ErrUnsupportedAiffLayout)
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		remaining:  int(dec.NumSampleFrames) * format.NumChannels,
	}, nil
}
