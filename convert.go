// SPDX-License-Identifier: EPL-2.0

package waver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/waver/audio"
	"github.com/ik5/waver/formats/wav"
	"github.com/ik5/waver/utils"
	"github.com/ik5/waver/wavetable"
)

// ErrNoSamples is returned when a decoded input yields no samples at all.
var ErrNoSamples = errors.New("input holds no samples")

// Options tunes a conversion. The zero value decodes WAV input, ignores
// header warnings, keeps raw sample values and logs to slog.Default().
type Options struct {
	// Decoder parses the input container. Nil selects the WAV decoder.
	Decoder audio.Decoder

	// Widen left-justifies samples of lower bit depths into the 32-bit
	// domain, so a full scale 16-bit file reaches -1 and 1.
	Widen bool

	// BufferSize is the number of samples read per call. Values below 1
	// use 4096.
	BufferSize int

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

func (o Options) decoder() audio.Decoder {
	if o.Decoder != nil {
		return o.Decoder
	}

	return wav.Decoder{IgnoreHeaderWarnings: true, Logger: o.logger()}
}

// DecodeSamples decodes r and returns the raw samples of its first
// channel. Every failure is an *audio.DecodeError.
func DecodeSamples(r io.Reader, opts Options) ([]int32, error) {
	log := opts.logger()

	src, err := opts.decoder().Decode(r)
	if err != nil {
		return nil, audio.NewDecodeError("", err)
	}
	defer src.Close()

	left, err := audio.NewLeftChannel(src)
	if err != nil {
		return nil, audio.NewDecodeError("", err)
	}

	samples, err := audio.Collect(left, opts.BufferSize)
	if err != nil {
		return nil, audio.NewDecodeError("", err)
	}
	if len(samples) == 0 {
		return nil, audio.NewDecodeError("", ErrNoSamples)
	}

	bitDepth := src.BitDepth()
	raw := make([]int32, len(samples))
	for i, v := range samples {
		if opts.Widen {
			raw[i] = utils.Widen(v, bitDepth)
		} else {
			raw[i] = int32(v)
		}
	}

	log.Debug("decoded input",
		slog.Int("sample_rate", src.SampleRate()),
		slog.Int("channels", src.Channels()),
		slog.Int("bit_depth", bitDepth),
		slog.Int("samples", len(raw)),
		slog.Bool("widen", opts.Widen),
	)

	return raw, nil
}

// Convert decodes r and writes the wavetable named name to w.
// Write failures are returned as *wavetable.WriteError.
func Convert(r io.Reader, w io.Writer, name wavetable.Name, opts Options) error {
	raw, err := DecodeSamples(r, opts)
	if err != nil {
		return err
	}

	if _, err := wavetable.New(name, raw).WriteTo(w); err != nil {
		return &wavetable.WriteError{Err: err}
	}

	return nil
}

// ConvertFile converts the file at inPath into a wavetable file at
// outPath. The input is decoded completely before outPath is created, so
// a decode failure never touches the destination.
func ConvertFile(inPath, outPath string, name wavetable.Name, opts Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	raw, err := DecodeSamples(in, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	wt := wavetable.New(name, raw)
	if err := wavetable.WriteFile(outPath, wt); err != nil {
		return err
	}

	opts.logger().Info("wavetable written",
		slog.String("name", name.String()),
		slog.String("path", outPath),
		slog.Int("samples", wt.Len()),
	)

	return nil
}
