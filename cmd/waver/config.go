// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"io"

	"github.com/alexflint/go-arg"
)

// config is filled from the command line, then the environment, then the
// default tags.
type config struct {
	In        string `arg:"-i,--in" help:"input file name inside the input directory, extension optional"`
	Name      string `arg:"-n,--name" help:"wavetable name"`
	All       bool   `arg:"--all" help:"convert every supported file of the input directory, naming each table after its file"`
	InputDir  string `arg:"--input-dir,env:WAVER_INPUT_DIR" default:"./input" help:"directory holding input files"`
	OutputDir string `arg:"--output-dir,env:WAVER_OUTPUT_DIR" default:"./output" help:"directory receiving .wtd files"`
	Widen     bool   `arg:"--widen,env:WAVER_WIDEN" help:"scale samples of lower bit depths to the full range"`
	Warnings  bool   `arg:"--warnings,env:WAVER_SHOW_HEADER_WARNINGS" help:"log non-fatal header warnings"`
	Verbose   bool   `arg:"-v,--verbose,env:WAVER_VERBOSE" help:"debug logging"`
	Jobs      int    `arg:"-j,--jobs,env:WAVER_JOBS" help:"parallel conversions with --all, 0 uses the CPU count"`
}

func (config) Description() string {
	return "waver turns single period wave files into .wtd wavetables"
}

// parseConfig parses args. Help requests are written to out and reported
// as arg.ErrHelp.
func parseConfig(args []string, out io.Writer) (config, error) {
	var cfg config

	p, err := arg.NewParser(arg.Config{Program: "waver"}, &cfg)
	if err != nil {
		return cfg, err
	}

	if err := p.Parse(args); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(out)
		} else {
			p.WriteUsage(out)
		}
		return cfg, err
	}

	return cfg, nil
}
