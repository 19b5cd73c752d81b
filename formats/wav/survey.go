// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

// knownChunks are skipped silently; anything else is reported.
var knownChunks = map[[4]byte]bool{
	riff.FmtID:           true,
	riff.DataFormatID:    true,
	{'L', 'I', 'S', 'T'}: true,
	{'f', 'a', 'c', 't'}: true,
	{'s', 'm', 'p', 'l'}: true,
	{'c', 'u', 'e', ' '}: true,
	{'i', 'n', 's', 't'}: true,
	{'J', 'U', 'N', 'K'}: true,
	{'j', 'u', 'n', 'k'}: true,
	{'P', 'A', 'D', ' '}: true,
	{'F', 'L', 'L', 'R'}: true,
	{'b', 'e', 'x', 't'}: true,
	{'P', 'E', 'A', 'K'}: true,
	{'a', 'c', 'i', 'd'}: true,
	{'i', 'd', '3', ' '}: true,
	{'I', 'D', '3', ' '}: true,
}

// extensibleFmtSize is the size of a WAVE_FORMAT_EXTENSIBLE fmt chunk; its
// SubFormat GUID starts at byte 24 with the format code.
const extensibleFmtSize = 40

// headerReport is what a pass over the RIFF chunk list found.
type headerReport struct {
	hasData bool
	// dataBytes is the part of the data chunk actually present in the stream.
	dataBytes int
	// subFormat is the format code of an extensible fmt chunk.
	subFormat    uint16
	hasSubFormat bool
	warnings     []string
}

func (r *headerReport) warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// surveyHeader walks the chunk list of a RIFF/WAVE stream. Structural
// failures were already rejected by the decoder, so everything odd found
// here is only a warning.
func surveyHeader(data []byte) headerReport {
	var report headerReport

	p := riff.New(bytes.NewReader(data))
	if err := p.ParseHeaders(); err != nil {
		report.warn("unreadable RIFF header: %v", err)
		return report
	}
	if declared := int(p.Size) + 8; declared != len(data) {
		report.warn("RIFF size field declares %d bytes, stream holds %d", declared, len(data))
	}

	offset := 12
	for offset+8 <= len(data) {
		chunk, err := p.NextChunk()
		if err != nil {
			break
		}

		declared := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		available := len(data) - body

		switch {
		case chunk.ID == riff.FmtID:
			if !report.hasSubFormat && declared >= extensibleFmtSize && body+extensibleFmtSize <= len(data) {
				report.subFormat = binary.LittleEndian.Uint16(data[body+24 : body+26])
				report.hasSubFormat = true
			}
			if declared > available {
				report.warn("chunk %q declares %d bytes, only %d present", string(chunk.ID[:]), declared, available)
			}
		case chunk.ID == riff.DataFormatID:
			if !report.hasData {
				report.hasData = true
				report.dataBytes = min(declared, available)
			} else {
				report.warn("extra data chunk at offset %d ignored", offset)
			}
			if declared > available {
				report.warn("data chunk declares %d bytes, only %d present", declared, available)
			}
		case !knownChunks[chunk.ID]:
			report.warn("unrecognized chunk %q (%d bytes) skipped", string(chunk.ID[:]), declared)
		case declared > available:
			report.warn("chunk %q declares %d bytes, only %d present", string(chunk.ID[:]), declared, available)
		}

		chunk.Drain()
		offset = body + chunk.Size
	}

	if offset < len(data) {
		report.warn("%d trailing bytes after the last chunk", len(data)-offset)
	}

	return report
}
