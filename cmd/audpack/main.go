// SPDX-License-Identifier: EPL-2.0

// Command audpack creates a multichannel AIFF or WAV file from a set of
// input sound files.
//
// Usage:
//
//	audpack [-h] [-v] [-b <bytes> | -f | -d] [-w] [-B <blocksize>] input_files... output_file
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ik5/audpack"
	"github.com/ik5/audpack/audio"
)

const usage = `Usage: audpack [-h] [-v] [-b <bytes> | -f | -d] [-w] [-B <blocksize>] input_files... output_file
Options:
-h              help
-v              verbose
-b <bytes>      output PCM bytes per sample (-b 2 or 16 bit PCM is default)
-f              32 bit floating point output
-d              64 bit floating point output
-w              Microsoft WAV format output (AIFF is default)
-B <blocksize>  processing blocksize in samples (default %d)
`

const help = `
audpack creates multichannel AIFF (or optionally WAV) sound files from a set
of input sound files of varying formats and resolutions. The sample data type
and bit resolution of the output file can also be chosen. The output file is
as long as the longest input file; shorter input files become tracks padded
at the end with silence. The order of the input files determines the order of
the tracks in the output file: the first track of the output is the first
track of the first input and the last track of the output is the last track
of the last input.

All input files must have the same sample rate. Supported inputs are WAV,
AIFF, FLAC, Ogg Vorbis and MP3.

audpack version %s
`

type config struct {
	help    bool
	verbose bool

	container      audio.Container
	representation audio.Representation
	blockFrames    int

	paths []string
}

// parseArgs reads flags and paths. Flags may appear between paths, and of
// -b, -f and -d the last one given wins.
func parseArgs(args []string) (config, error) {
	cfg := config{
		container:      audio.AIFF,
		representation: audio.Int16,
	}

	fs := flag.NewFlagSet("audpack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&cfg.help, "h", false, "help")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose")
	fs.Func("b", "output PCM bytes per sample", func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid bytes per sample %q", s)
		}
		cfg.representation = audio.IntRepresentation(n)
		return nil
	})
	fs.BoolFunc("f", "32 bit floating point output", func(string) error {
		cfg.representation = audio.Float32
		return nil
	})
	fs.BoolFunc("d", "64 bit floating point output", func(string) error {
		cfg.representation = audio.Float64
		return nil
	})
	wav := fs.Bool("w", false, "WAV output")
	fs.IntVar(&cfg.blockFrames, "B", audio.DefaultBlockFrames, "processing blocksize in samples")

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return cfg, err
		}

		parsed := len(rest) - len(fs.Args())
		terminated := parsed > 0 && rest[parsed-1] == "--"
		rest = fs.Args()
		if terminated {
			// Everything after "--" is a path, even when it looks like a flag.
			cfg.paths = append(cfg.paths, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		cfg.paths = append(cfg.paths, rest[0])
		rest = rest[1:]
	}

	if *wav {
		cfg.container = audio.WAV
	}
	cfg.blockFrames = max(cfg.blockFrames, 1)

	return cfg, nil
}

// progress prints the creating line and updates its percentage in place.
type progress struct {
	w       io.Writer
	started bool
}

func (p *progress) start(path string, info audio.Info) {
	fmt.Fprintf(p.w, "creating %d channel file %s [      ", info.Channels, path)
	p.started = true
}

func (p *progress) update(done, total int64) {
	if done >= total {
		fmt.Fprint(p.w, "\b\b\b\b\b100% ]\n")
		p.started = false
		return
	}

	fmt.Fprintf(p.w, "\b\b\b\b\b%02d%% ]", 100*done/total)
}

// abort ends an unfinished progress line so the error starts on its own.
func (p *progress) abort() {
	if p.started {
		fmt.Fprintln(p.w)
		p.started = false
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintf(stderr, usage, audio.DefaultBlockFrames)
		return 1
	}

	if cfg.help {
		fmt.Fprintf(stderr, usage, audio.DefaultBlockFrames)
		fmt.Fprintf(stderr, help, audpack.Version)
		return 0
	}

	if len(cfg.paths) < 2 {
		fmt.Fprintf(stderr, "error: %v\n", audio.ErrTooFewFiles)
		fmt.Fprintf(stderr, usage, audio.DefaultBlockFrames)
		return 1
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	p := &progress{w: stdout}
	opts := audpack.Options{
		Container:      cfg.container,
		Representation: cfg.representation,
		BlockFrames:    cfg.blockFrames,
		OnOutput:       p.start,
		Progress:       p.update,
		Logger:         logger,
	}
	if cfg.verbose {
		opts.Verbose = stdout
	}

	inputs, output := cfg.paths[:len(cfg.paths)-1], cfg.paths[len(cfg.paths)-1]
	if err := audpack.Pack(inputs, output, opts); err != nil {
		p.abort()
		fmt.Fprintf(stderr, "error: %v\n", err)

		var cfgErr *audio.ConfigError
		if errors.As(err, &cfgErr) && errors.Is(err, audio.ErrIllegalFormat) {
			fmt.Fprintf(stderr, usage, audio.DefaultBlockFrames)
		}
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
