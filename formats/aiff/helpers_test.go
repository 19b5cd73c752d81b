// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// encodeAIFF builds a FORM/AIFF stream with a COMM and an SSND chunk
// holding big endian, two's complement samples.
func encodeAIFF(t testing.TB, sampleRate, channels, bitDepth int, samples []int) []byte {
	t.Helper()

	var data bytes.Buffer
	for _, v := range samples {
		switch bitDepth {
		case 8:
			data.WriteByte(byte(int8(v)))
		case 16:
			data.Write(binary.BigEndian.AppendUint16(nil, uint16(int16(v))))
		case 24:
			u := uint32(int32(v))
			data.Write([]byte{byte(u >> 16), byte(u >> 8), byte(u)})
		case 32:
			data.Write(binary.BigEndian.AppendUint32(nil, uint32(int32(v))))
		default:
			t.Fatalf("encodeAIFF: unsupported bit depth %d", bitDepth)
		}
	}

	var comm bytes.Buffer
	comm.Write(binary.BigEndian.AppendUint16(nil, uint16(channels)))
	comm.Write(binary.BigEndian.AppendUint32(nil, uint32(len(samples)/channels)))
	comm.Write(binary.BigEndian.AppendUint16(nil, uint16(bitDepth)))
	rate := goaudio.IntToIEEEFloat(sampleRate)
	comm.Write(rate[:])

	var ssnd bytes.Buffer
	ssnd.Write(make([]byte, 8)) // offset and block size
	ssnd.Write(data.Bytes())

	var body bytes.Buffer
	body.WriteString("AIFF")
	writeChunk(&body, "COMM", comm.Bytes())
	writeChunk(&body, "SSND", ssnd.Bytes())

	var out bytes.Buffer
	out.WriteString("FORM")
	out.Write(binary.BigEndian.AppendUint32(nil, uint32(body.Len())))
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, id string, payload []byte) {
	w.WriteString(id)
	w.Write(binary.BigEndian.AppendUint32(nil, uint32(len(payload))))
	w.Write(payload)
	if len(payload)%2 == 1 {
		w.WriteByte(0)
	}
}
