// SPDX-License-Identifier: EPL-2.0

package wavetable

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName indicates a name that is empty after trimming whitespace
	ErrEmptyName = errors.New("wavetable name is empty")

	// ErrLeadingDigit indicates a name whose first character is a decimal digit
	ErrLeadingDigit = errors.New("first character of wavetable name should be a letter")

	// ErrMalformedData indicates wavetable text that cannot be parsed back
	ErrMalformedData = errors.New("malformed wavetable data")
)

// InvalidNameError reports a rejected wavetable name candidate.
type InvalidNameError struct {
	Candidate string
	Err       error
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid wavetable name %q: %v", e.Candidate, e.Err)
}

func (e *InvalidNameError) Unwrap() error { return e.Err }

// WriteError reports a failure to create or write a wavetable file.
// Bytes flushed before the failure are left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write wavetable: %v", e.Err)
	}

	return fmt.Sprintf("write wavetable %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
