// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/ik5/waver/audio"
)

func readAll(t *testing.T, src audio.Source) []int {
	t.Helper()

	got, err := audio.Collect(src, 7)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return got
}

func warningsOf(src audio.Source) []string {
	if w, ok := src.(interface{ Warnings() []string }); ok {
		return w.Warnings()
	}
	return nil
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int{0, 100, -100, math.MaxInt16, math.MinInt16}
	data := encodePCM(t, Format{SampleRate: 44100, Channels: 1, BitDepth: 16}, samples)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
	if src.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", src.BitDepth())
	}

	got := readAll(t, src)
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], samples[i])
		}
	}

	if w := warningsOf(src); len(w) != 0 {
		t.Errorf("Warnings() = %v, want none for a canonical file", w)
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int{1, -1, 2, -2, 3, -3}
	data := encodePCM(t, Format{SampleRate: 48000, Channels: 2, BitDepth: 16}, samples)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	got := readAll(t, src)
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		samples  []int
	}{
		{"8-bit", 8, []int{0, 127, -128, 5, -5}},
		{"16-bit", 16, []int{0, 32767, -32768, 1234}},
		{"24-bit", 24, []int{0, 8388607, -8388608, -1, 70000}},
		{"32-bit", 32, []int{0, math.MaxInt32, math.MinInt32, 1073741823, -1073741824}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: tt.bitDepth}, tt.samples)

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.BitDepth() != tt.bitDepth {
				t.Errorf("BitDepth() = %d, want %d", src.BitDepth(), tt.bitDepth)
			}

			got := readAll(t, src)
			if len(got) != len(tt.samples) {
				t.Fatalf("decoded %d samples, want %d (%v)", len(got), len(tt.samples), got)
			}
			for i := range tt.samples {
				if got[i] != tt.samples[i] {
					t.Errorf("sample[%d] = %d, want %d", i, got[i], tt.samples[i])
				}
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, []int{1, 2, 3})

	// io.MultiReader hides the Seek method of bytes.Reader.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := readAll(t, src); len(got) != 3 || got[2] != 3 {
		t.Errorf("decoded %v, want [1 2 3]", got)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	valid := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, []int{1, 2, 3, 4})

	badMarker := bytes.Clone(valid)
	copy(badMarker[8:12], "AVI ")

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmptyInput},
		{"not riff", []byte("This is not WAV data at all"), ErrNotWavFile},
		{"invalid WAVE marker", badMarker, ErrNotWavFile},
		{"truncated header", valid[:10], ErrNotWavFile},
		{"no fmt chunk", riffFile(chunk("data", pcm16(1, 2))), ErrUnsupportedWavLayout},
		{"float codec", riffFile(fmtChunk(3, 1, 8000, 32), chunk("data", make([]byte, 8))), ErrUnsupportedCodec},
		{"adpcm codec", riffFile(fmtChunk(2, 1, 8000, 4), chunk("data", make([]byte, 8))), ErrUnsupportedCodec},
		{"12-bit", riffFile(fmtChunk(1, 1, 8000, 12), chunk("data", make([]byte, 8))), ErrUnsupportedBitDepth},
		{"no data chunk", riffFile(fmtChunk(1, 1, 8000, 16)), ErrMissingDataChunk},
		{"empty data chunk", riffFile(fmtChunk(1, 1, 8000, 16), chunk("data", nil)), ErrNoSamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatalf("Decode() = %v, want error %v", src, tt.want)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}

			var de *audio.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Decode() error %T is not *audio.DecodeError", err)
			}
			if de.Format != "wav" {
				t.Errorf("DecodeError.Format = %q, want %q", de.Format, "wav")
			}
		})
	}
}

func TestDecoder_ExtensibleFormat(t *testing.T) {
	t.Parallel()

	data := riffFile(extensibleFmtChunk(1, 8000, 16, formatPCM), chunk("data", pcm16(7, -7)))

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src); len(got) != 2 || got[0] != 7 || got[1] != -7 {
		t.Errorf("decoded %v, want [7 -7]", got)
	}
}

func TestDecoder_ExtensibleNonPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header rawChunk
	}{
		{name: "ieee float subformat", header: extensibleFmtChunk(1, 8000, 32, 3)},
		{name: "alaw subformat", header: extensibleFmtChunk(1, 8000, 8, 6)},
		{name: "missing subformat", header: fmtChunk(0xFFFE, 1, 8000, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := riffFile(tt.header, chunk("data", make([]byte, 8)))

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrUnsupportedCodec) {
				t.Errorf("Decode() error = %v, want %v", err, ErrUnsupportedCodec)
			}
		})
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	data := riffFile(
		fmtChunk(1, 1, 8000, 16),
		chunk("ZZZZ", []byte("vendor junk")),
		chunk("data", pcm16(10, 20, 30)),
	)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	src, err := Decoder{Logger: logger}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := readAll(t, src)
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Errorf("decoded %v, want [10 20 30]", got)
	}

	warnings := warningsOf(src)
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"ZZZZ"`) {
		t.Errorf("Warnings() = %v, want one warning about ZZZZ", warnings)
	}
	if !strings.Contains(logs.String(), "ZZZZ") || !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("log output %q does not carry the warning", logs.String())
	}
}

func TestDecoder_IgnoreHeaderWarnings(t *testing.T) {
	t.Parallel()

	data := riffFile(
		fmtChunk(1, 1, 8000, 16),
		chunk("ZZZZ", []byte("vendor junk")),
		chunk("data", pcm16(10, 20, 30)),
	)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	src, err := Decoder{IgnoreHeaderWarnings: true, Logger: logger}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if w := warningsOf(src); len(w) != 0 {
		t.Errorf("Warnings() = %v, want none", w)
	}
	if logs.Len() != 0 {
		t.Errorf("logged %q, want nothing", logs.String())
	}
	if got := readAll(t, src); len(got) != 3 {
		t.Errorf("decoded %d samples, want 3", len(got))
	}
}

func TestDecoder_ListChunkBeforeFmt(t *testing.T) {
	t.Parallel()

	info := append([]byte("INFO"), []byte("INAM\x06\x00\x00\x00sine\x00\x00")...)
	data := riffFile(
		chunk("LIST", info),
		fmtChunk(1, 1, 8000, 16),
		chunk("data", pcm16(-5, 5)),
	)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src); len(got) != 2 || got[0] != -5 || got[1] != 5 {
		t.Errorf("decoded %v, want [-5 5]", got)
	}
	if w := warningsOf(src); len(w) != 0 {
		t.Errorf("Warnings() = %v, want none for a LIST chunk", w)
	}
}

func TestDecoder_TruncatedDataChunk(t *testing.T) {
	t.Parallel()

	data := riffFile(
		fmtChunk(1, 1, 8000, 16),
		rawChunk{id: "data", body: pcm16(1, 2, 3), size: 100},
	)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := readAll(t, src)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("decoded %v, want [1 2 3]", got)
	}

	warnings := warningsOf(src)
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "declares 100 bytes") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings() = %v, want a truncated data chunk warning", warnings)
	}
}

func TestDecoder_RIFFSizeMismatch(t *testing.T) {
	t.Parallel()

	data := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, []int{1, 2})
	data[4] = 0xFF

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	warnings := warningsOf(src)
	if len(warnings) == 0 || !strings.Contains(warnings[0], "RIFF size") {
		t.Errorf("Warnings() = %v, want a RIFF size warning", warnings)
	}
}

func TestDecoder_OddSizedChunkPadding(t *testing.T) {
	t.Parallel()

	// Three 8-bit samples make an odd sized data chunk followed by a pad byte.
	samples := []int{-1, 0, 1}
	data := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 8}, samples)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := readAll(t, src)
	if len(got) != 3 {
		t.Fatalf("decoded %v, want %v", got, samples)
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestDecoder_PartialFrame(t *testing.T) {
	t.Parallel()

	// Stereo with 3 samples: the last frame lacks its right sample.
	data := riffFile(fmtChunk(1, 2, 8000, 16), chunk("data", pcm16(1, 2, 3)))

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := readAll(t, src); len(got) != 2 {
		t.Errorf("decoded %v, want one whole frame", got)
	}
	if w := warningsOf(src); len(w) == 0 {
		t.Error("Warnings() empty, want a partial frame warning")
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := make([]int, 100)
	for i := range samples {
		samples[i] = i * 10
	}
	data := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, samples)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]int, 60)
	n, err := src.ReadSamples(buf)
	if n != 60 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (60, nil)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 40 || err != io.EOF {
		t.Fatalf("second ReadSamples() = (%d, %v), want (40, io.EOF)", n, err)
	}
	if buf[39] != 990 {
		t.Errorf("buf[39] = %d, want 990", buf[39])
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	data := encodePCM(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, []int{1})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 22050, 44100, 96000, 192000} {
		data := encodePCM(t, Format{SampleRate: rate, Channels: 1, BitDepth: 16}, []int{1, 2})

		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Decode() at %d Hz error = %v", rate, err)
		}
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	samples := make([]int, 2048)
	for i := range samples {
		samples[i] = int(math.Sin(2*math.Pi*float64(i)/2048) * math.MaxInt16)
	}
	data := encodePCM(b, Format{SampleRate: 44100, Channels: 1, BitDepth: 16}, samples)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = Decoder{IgnoreHeaderWarnings: true}.Decode(bytes.NewReader(data))
	}
}
