// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrEmptyInput           = errors.New("empty WAV input")
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrMalformedHeader      = errors.New("malformed WAV header")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedCodec     = errors.New("unsupported WAV codec")
	ErrUnsupportedBitDepth  = errors.New("unsupported WAV bit depth")
	ErrMissingDataChunk     = errors.New("missing WAV data chunk")
	ErrNoSamples            = errors.New("WAV data chunk holds no samples")
)
