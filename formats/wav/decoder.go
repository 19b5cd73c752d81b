// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/waver/audio"
)

const formatName = "wav"

// WAVE format tags accepted as integer PCM.
const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE
)

// pcmSource serves samples that were fully decoded up front.
type pcmSource struct {
	data       []int
	pos        int
	sampleRate int
	channels   int
	bitDepth   int
	warnings   []string
}

func (s *pcmSource) SampleRate() int { return s.sampleRate }
func (s *pcmSource) Channels() int   { return s.channels }
func (s *pcmSource) BitDepth() int   { return s.bitDepth }
func (s *pcmSource) Close() error    { return nil }

// Warnings lists the non-fatal header problems seen while decoding. It is
// empty when the decoder was told to ignore them.
func (s *pcmSource) Warnings() []string { return s.warnings }

func (s *pcmSource) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := copy(dst, s.data[s.pos:])
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits per sample.
//
// Problems in the header that do not stop sample extraction (unknown
// chunks, inconsistent size fields, a truncated data chunk) are warnings.
// Unless IgnoreHeaderWarnings is set they are logged at warn level and
// reported by the returned source's Warnings method. They are never
// returned as errors.
type Decoder struct {
	IgnoreHeaderWarnings bool
	// Logger receives header warnings; nil means slog.Default().
	Logger *slog.Logger
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	// The header survey and go-audio both need to walk the container, so
	// the whole stream is held in memory.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, decodeError(fmt.Errorf("reading wav data: %w", err))
	}
	if len(data) == 0 {
		return nil, decodeError(ErrEmptyInput)
	}
	if len(data) < 12 || !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, decodeError(ErrNotWavFile)
	}

	dec := gowav.NewDecoder(bytes.NewReader(data))
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, decodeError(fmt.Errorf("%w: %w", ErrMalformedHeader, err))
	}
	if dec.NumChans < 1 {
		return nil, decodeError(ErrUnsupportedWavLayout)
	}
	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, decodeError(fmt.Errorf("%w: format tag 0x%04X", ErrUnsupportedCodec, dec.WavAudioFormat))
	}

	report := surveyHeader(data)
	if dec.WavAudioFormat == formatExtensible {
		if !report.hasSubFormat {
			return nil, decodeError(fmt.Errorf("%w: extensible format without SubFormat", ErrUnsupportedCodec))
		}
		if report.subFormat != formatPCM {
			return nil, decodeError(fmt.Errorf("%w: extensible SubFormat 0x%04X", ErrUnsupportedCodec, report.subFormat))
		}
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, decodeError(fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth))
	}

	if !report.hasData {
		return nil, decodeError(ErrMissingDataChunk)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, decodeError(fmt.Errorf("%w: %w", ErrMissingDataChunk, err))
	}

	channels := int(dec.NumChans)
	samples := buf.Data

	// go-audio reads the pad byte of odd sized chunks and may run past a
	// short chunk, so keep only what the data chunk really holds, in whole frames.
	bytesPerSample := bitDepth / 8
	if limit := report.dataBytes / bytesPerSample; len(samples) > limit {
		samples = samples[:limit]
	}
	if rem := len(samples) % channels; rem != 0 {
		report.warn("trailing partial frame of %d samples dropped", rem)
		samples = samples[:len(samples)-rem]
	}
	if len(samples) == 0 {
		return nil, decodeError(ErrNoSamples)
	}

	// 8-bit WAV is unsigned.
	if bitDepth == 8 {
		for i := range samples {
			samples[i] -= 128
		}
	}

	if expected := uint32(dec.SampleRate) * uint32(channels) * uint32(bytesPerSample); dec.AvgBytesPerSec != expected {
		report.warn("byte rate field is %d, expected %d", dec.AvgBytesPerSec, expected)
	}

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if md := dec.Metadata; md != nil {
		logger.Debug("wav metadata", "title", md.Title, "software", md.Software, "artist", md.Artist)
	}

	src := &pcmSource{
		data:       samples,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
	}

	if !d.IgnoreHeaderWarnings && len(report.warnings) > 0 {
		for _, w := range report.warnings {
			logger.Warn("wav header", "warning", w)
		}
		src.warnings = report.warnings
	}

	return src, nil
}

func decodeError(err error) error {
	return audio.NewDecodeError(formatName, err)
}
