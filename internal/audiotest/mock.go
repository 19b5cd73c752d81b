// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by sources built with NewFailingSource.
var ErrInjected = errors.New("audiotest: injected read failure")

// MockSource is a test helper that generates integer PCM data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	bitDepth     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) int
	failAfter    int // frames served before ErrInjected, negative disables
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, bitDepth, totalSamples int, waveform func(sample int, channel int) int) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		waveform:     waveform,
		failAfter:    -1,
	}
}

// NewSliceSource serves frames as interleaved samples, one inner slice per frame.
func NewSliceSource(sampleRate, bitDepth int, frames [][]int) *MockSource {
	channels := 1
	if len(frames) > 0 {
		channels = len(frames[0])
	}
	return NewMockSource(sampleRate, channels, bitDepth, len(frames), func(sample int, channel int) int {
		return frames[sample][channel]
	})
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, 16, totalSamples, func(sample int, channel int) int {
		return 0
	})
}

// NewSineSource creates a mock source with one period of a full scale sine
// per totalSamples, identical on every channel.
func NewSineSource(sampleRate, channels, bitDepth, totalSamples int) *MockSource {
	peak := float64(int64(1)<<(bitDepth-1) - 1)
	return NewMockSource(sampleRate, channels, bitDepth, totalSamples, func(sample int, channel int) int {
		phase := 2 * math.Pi * float64(sample) / float64(totalSamples)
		return int(math.Round(math.Sin(phase) * peak))
	})
}

// NewFailingSource creates a source that returns ErrInjected after failAfter frames.
func NewFailingSource(channels, failAfter int) *MockSource {
	m := NewMockSource(44100, channels, 16, failAfter*4+4, func(sample int, channel int) int {
		return sample
	})
	m.failAfter = failAfter
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BitDepth() int   { return m.bitDepth }
func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []int) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrInjected
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesRequested := len(dst) / m.channels
	framesAvailable := m.totalSamples - m.generated
	if m.failAfter >= 0 {
		framesAvailable = min(framesAvailable, m.failAfter-m.generated)
	}
	framesToWrite := min(framesRequested, framesAvailable)

	// Generate samples
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
