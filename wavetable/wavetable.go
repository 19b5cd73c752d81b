// SPDX-License-Identifier: EPL-2.0

package wavetable

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ik5/waver/utils"
)

// precision is the number of digits written after the decimal point.
const precision = 8

// Wavetable is a named sequence of normalized samples in [-1, 1].
type Wavetable struct {
	Name    Name
	Samples []float64
}

// New normalizes raw 32-bit samples into a Wavetable.
func New(name Name, raw []int32) *Wavetable {
	return &Wavetable{Name: name, Samples: utils.NormalizeAll(raw)}
}

// FromSamples builds a Wavetable from already normalized samples.
// The slice is copied.
func FromSamples(name Name, samples []float64) *Wavetable {
	return &Wavetable{Name: name, Samples: append([]float64(nil), samples...)}
}

// Len returns the number of samples.
func (wt *Wavetable) Len() int { return len(wt.Samples) }

// AppendText appends the text form of the wavetable to b.
//
// The first line holds the name, followed by one sample per line with
// eight fractional digits. Lines are separated by '\n' and the last line
// has no terminator, so a wavetable without samples is the bare name.
func (wt *Wavetable) AppendText(b []byte) ([]byte, error) {
	b = append(b, string(wt.Name)...)
	for _, v := range wt.Samples {
		b = append(b, '\n')
		b = appendSample(b, v)
	}

	return b, nil
}

// MarshalText implements encoding.TextMarshaler.
func (wt *Wavetable) MarshalText() ([]byte, error) {
	return wt.AppendText(make([]byte, 0, len(wt.Name)+len(wt.Samples)*12))
}

// UnmarshalText parses the text form produced by MarshalText.
func (wt *Wavetable) UnmarshalText(text []byte) error {
	nameLine, rest, hasData := bytes.Cut(text, []byte{'\n'})

	name, err := ParseName(string(nameLine))
	if err != nil {
		return err
	}

	var samples []float64
	if hasData {
		lines := bytes.Split(rest, []byte{'\n'})
		samples = make([]float64, 0, len(lines))
		for i, line := range lines {
			v, err := strconv.ParseFloat(string(bytes.TrimRight(line, "\r")), 64)
			if err != nil {
				return fmt.Errorf("%w: line %d: %w", ErrMalformedData, i+2, err)
			}
			if v < -1 || v > 1 {
				return fmt.Errorf("%w: line %d: sample %v out of range", ErrMalformedData, i+2, v)
			}
			samples = append(samples, v)
		}
	}

	wt.Name = name
	wt.Samples = samples

	return nil
}

// WriteTo writes the text form of the wavetable to w through a buffered
// writer. It implements io.WriterTo.
func (wt *Wavetable) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if _, err := bw.WriteString(string(wt.Name)); err != nil {
		return cw.n, err
	}

	line := make([]byte, 0, 16)
	for _, v := range wt.Samples {
		line = append(line[:0], '\n')
		line = appendSample(line, v)
		if _, err := bw.Write(line); err != nil {
			return cw.n, err
		}
	}

	err := bw.Flush()

	return cw.n, err
}

// WriteFile creates or truncates path and writes wt to it. Any failure
// is returned as a *WriteError; partially written content is not removed.
func WriteFile(path string, wt *Wavetable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	if _, werr := wt.WriteTo(f); werr != nil {
		return &WriteError{Path: path, Err: werr}
	}

	return nil
}

func appendSample(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, v, 'f', precision, 64)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
