// SPDX-License-Identifier: EPL-2.0

package wavetable

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name is a validated wavetable name. Use ParseName to obtain one.
type Name string

func (n Name) String() string { return string(n) }

// ParseName validates a user supplied wavetable name.
//
// Surrounding whitespace is trimmed and every remaining whitespace rune
// is replaced with an underscore. The result is rejected when it is
// empty or starts with a decimal digit; the returned error is then an
// *InvalidNameError wrapping ErrEmptyName or ErrLeadingDigit.
func ParseName(candidate string) (Name, error) {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return "", &InvalidNameError{Candidate: candidate, Err: ErrEmptyName}
	}

	first, _ := utf8.DecodeRuneInString(trimmed)
	if unicode.IsDigit(first) {
		return "", &InvalidNameError{Candidate: candidate, Err: ErrLeadingDigit}
	}

	return Name(strings.Map(underscoreSpace, trimmed)), nil
}

// MustParseName is like ParseName but panics on an invalid name.
func MustParseName(candidate string) Name {
	n, err := ParseName(candidate)
	if err != nil {
		panic(err)
	}

	return n
}

func underscoreSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return '_'
	}

	return r
}
