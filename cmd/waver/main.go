// SPDX-License-Identifier: EPL-2.0

// Command waver turns a single period wave file from the input directory
// into a .wtd wavetable in the output directory.
//
//	waver [--in name] [--name wavetable] [--widen] [--warnings] [-v]
//	waver --all [-j jobs]
//
// Missing values are asked for on stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alexflint/go-arg"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/waver"
	"github.com/ik5/waver/audio"
	"github.com/ik5/waver/formats/aiff"
	"github.com/ik5/waver/formats/wav"
	"github.com/ik5/waver/wavetable"
)

const (
	defaultExt = ".wav"
	outputExt  = ".wtd"
)

var (
	errInputMissing = errors.New("input file doesn't exist or format is not supported")
	errNothingToDo  = errors.New("no supported input files found")
	errSameOutput   = errors.New("input files share an output file")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if errors.Is(err, arg.ErrHelp) {
		return nil
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cfg.All {
		err = convertAll(ctx, cfg, stdout, logger)
	} else {
		err = convertOne(cfg, newPrompter(stdin, stdout), stdout, logger)
	}
	if err != nil {
		logger.Error("conversion failed", "error", err)
	}
	return err
}

func convertOne(cfg config, p *prompter, stdout io.Writer, logger *slog.Logger) error {
	reg := newRegistry(cfg, logger)

	inName := cfg.In
	if inName == "" {
		answer, err := p.ask("Input wave file name (short):")
		if err != nil {
			return err
		}
		inName = strings.TrimSpace(answer)
	}

	inPath, decoder, err := resolveInput(reg, cfg.InputDir, inName)
	if err != nil {
		fmt.Fprintln(stdout, "Input file doesn't exist or format is not supported")
		return err
	}

	name, err := resolveName(p, cfg.Name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outPath := outputPath(cfg.OutputDir, inPath)
	opts := waver.Options{Decoder: decoder, Widen: cfg.Widen, Logger: logger}
	if err := waver.ConvertFile(inPath, outPath, name, opts); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Done! Find your file in the output directory: %s\n", outPath)
	return nil
}

// convertAll converts every supported file of the input directory, each
// wavetable named after its file. Inputs that would write the same output
// file are rejected before anything runs. The first failure cancels
// conversions that have not started yet.
func convertAll(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger) error {
	reg := newRegistry(cfg, logger)

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	type task struct {
		file    string
		inPath  string
		outPath string
		decoder audio.Decoder
	}

	var tasks []task
	// Keyed case-insensitively so case folding file systems cannot merge
	// two outputs either.
	owners := make(map[string]string)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		decoder, ok := reg.Get(filepath.Ext(entry.Name()))
		if !ok {
			logger.Debug("skipping unsupported file", "file", entry.Name())
			continue
		}

		inPath := filepath.Join(cfg.InputDir, entry.Name())
		outPath := outputPath(cfg.OutputDir, inPath)
		key := strings.ToLower(outPath)
		if owner, taken := owners[key]; taken {
			return fmt.Errorf("%w: %s and %s both map to %s", errSameOutput, owner, entry.Name(), outPath)
		}
		owners[key] = entry.Name()

		tasks = append(tasks, task{file: entry.Name(), inPath: inPath, outPath: outPath, decoder: decoder})
	}
	if len(tasks) == 0 {
		return fmt.Errorf("%w in %s", errNothingToDo, cfg.InputDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, tk := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			stem := strings.TrimSuffix(tk.file, filepath.Ext(tk.file))
			name, err := wavetable.ParseName(stem)
			if err != nil {
				return fmt.Errorf("%s: %w", tk.file, err)
			}

			opts := waver.Options{Decoder: tk.decoder, Widen: cfg.Widen, Logger: logger}
			return waver.ConvertFile(tk.inPath, tk.outPath, name, opts)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Done! Converted %d files into the output directory: %s\n", len(tasks), cfg.OutputDir)
	return nil
}

func newRegistry(cfg config, logger *slog.Logger) *audio.Registry {
	wavDecoder := wav.Decoder{IgnoreHeaderWarnings: !cfg.Warnings, Logger: logger}

	reg := audio.NewRegistry()
	reg.Register("wav", wavDecoder)
	reg.Register("wave", wavDecoder)
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

// resolveInput maps a short name to an existing file and its decoder. A
// name without a registered extension gets ".wav".
func resolveInput(reg *audio.Registry, dir, short string) (string, audio.Decoder, error) {
	if short == "" {
		return "", nil, errInputMissing
	}

	file := short
	ext := filepath.Ext(short)
	decoder, ok := reg.Get(ext)
	if ext == "" || !ok {
		file = short + defaultExt
		decoder, _ = reg.Get(defaultExt)
	}

	path := filepath.Join(dir, file)
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", errInputMissing, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil, fmt.Errorf("%w: %s is not a regular file", errInputMissing, path)
	}

	return path, decoder, nil
}

func resolveName(p *prompter, flagValue string) (wavetable.Name, error) {
	if flagValue != "" {
		return wavetable.ParseName(flagValue)
	}
	return p.askName()
}

func outputPath(dir, inPath string) string {
	base := filepath.Base(inPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+outputExt)
}
