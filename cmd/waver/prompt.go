// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ik5/waver/wavetable"
)

var errNoInput = errors.New("no input on stdin")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the next input line without its terminator.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return "", errNoInput
	}

	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// askName keeps asking until a valid wavetable name is entered.
func (p *prompter) askName() (wavetable.Name, error) {
	for {
		answer, err := p.ask("Wavetable name:")
		if err != nil {
			return "", err
		}

		name, err := wavetable.ParseName(answer)
		switch {
		case err == nil:
			return name, nil
		case errors.Is(err, wavetable.ErrLeadingDigit):
			fmt.Fprintln(p.out, "First character of wavetable name should be a letter...")
		default:
			fmt.Fprintln(p.out, "Wavetable name should not be empty...")
		}
	}
}
