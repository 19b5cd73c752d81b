// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// rawChunk is a RIFF chunk written verbatim. size overrides the declared
// length when non-negative.
type rawChunk struct {
	id   string
	body []byte
	size int
}

func chunk(id string, body []byte) rawChunk {
	return rawChunk{id: id, body: body, size: -1}
}

func fmtChunk(tag, channels, sampleRate, bits int) rawChunk {
	body := new(bytes.Buffer)
	blockAlign := channels * bits / 8
	binary.Write(body, binary.LittleEndian, uint16(tag))
	binary.Write(body, binary.LittleEndian, uint16(channels))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(bits))
	return chunk("fmt ", body.Bytes())
}

// extensibleFmtChunk is a 40 byte WAVE_FORMAT_EXTENSIBLE fmt chunk whose
// SubFormat GUID carries subFormat.
func extensibleFmtChunk(channels, sampleRate, bits int, subFormat uint16) rawChunk {
	body := bytes.NewBuffer(append([]byte(nil), fmtChunk(0xFFFE, channels, sampleRate, bits).body...))
	binary.Write(body, binary.LittleEndian, uint16(22))   // cbSize
	binary.Write(body, binary.LittleEndian, uint16(bits)) // valid bits
	binary.Write(body, binary.LittleEndian, uint32(0))    // channel mask
	binary.Write(body, binary.LittleEndian, subFormat)
	body.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	return chunk("fmt ", body.Bytes())
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

// riffFile assembles a RIFF/WAVE stream with a correct RIFF size field.
func riffFile(chunks ...rawChunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	for _, c := range chunks {
		size := c.size
		if size < 0 {
			size = len(c.body)
		}
		body.WriteString(c.id)
		binary.Write(body, binary.LittleEndian, uint32(size))
		body.Write(c.body)
		if len(c.body)%2 == 1 && c.size < 0 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func encodePCM(t testing.TB, f Format, samples []int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := WritePCM(buf, f, samples); err != nil {
		t.Fatalf("WritePCM() error = %v", err)
	}
	return buf.Bytes()
}
