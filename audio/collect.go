// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 4096

// Collect drains src and returns every sample it produced, in order.
// bufferSize controls the read chunk; values below 1 use a default of 4096.
func Collect(src Source, bufferSize int) ([]int, error) {
	if bufferSize < 1 {
		bufferSize = defaultBufferSize
	}

	samples := make([]int, 0, bufferSize)
	buf := make([]int, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		// A source that keeps returning nothing without an error is exhausted.
		if n == 0 {
			break
		}
	}

	return samples, nil
}
