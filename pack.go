// SPDX-License-Identifier: EPL-2.0

package audpack

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audpack/audio"
	"github.com/ik5/audpack/formats"
)

// Version of the audpack tool.
const Version = "1.0.0"

// Options configures Pack. The zero value packs to 16 bit PCM AIFF in blocks
// of audio.DefaultBlockFrames frames.
type Options struct {
	Container      audio.Container
	Representation audio.Representation // zero means audio.Int16

	// BlockFrames is the number of frames processed per block. Zero selects
	// audio.DefaultBlockFrames; negative values are raised to 1.
	BlockFrames int

	// Verbose receives the stream summaries when not nil.
	Verbose io.Writer

	// OnOutput is called once the output file has been created, before the
	// first block is written.
	OnOutput func(path string, info audio.Info)

	// Progress is passed on to the interleaver.
	Progress func(done, total int64)

	Logger   *slog.Logger    // nil means slog.Default()
	Registry *audio.Registry // nil means formats.Default
}

func (o Options) withDefaults() Options {
	if o.Representation == 0 {
		o.Representation = audio.Int16
	}

	switch {
	case o.BlockFrames == 0:
		o.BlockFrames = audio.DefaultBlockFrames
	case o.BlockFrames < 1:
		o.BlockFrames = 1
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Registry == nil {
		o.Registry = formats.Default
	}

	return o
}

// Pack interleaves the channels of every input, in order, into a new file
// at output. All inputs must share one sample rate; shorter inputs are padded
// with silence to the length of the longest.
//
// Option and input problems are returned as *audio.ConfigError before the
// output is created. Stream failures are returned as *audio.IOError.
func Pack(inputs []string, output string, opts Options) (err error) {
	if len(inputs) == 0 || output == "" {
		return &audio.ConfigError{Err: audio.ErrTooFewFiles}
	}

	opts = opts.withDefaults()
	log := opts.Logger

	format, err := audio.Negotiate(opts.Container, opts.Representation)
	if err != nil {
		return err
	}

	if opts.Verbose != nil {
		fmt.Fprintf(opts.Verbose, "\naudpack version %s\n\n", Version)
	}

	opened := make([]audio.Input, 0, len(inputs))
	defer func() {
		for _, in := range opened {
			release(&err, in.Path, in.Source)
		}
	}()

	infos := make([]audio.Info, 0, len(inputs))
	for _, path := range inputs {
		src, err := formats.OpenWith(opts.Registry, path)
		if err != nil {
			return err
		}

		info := src.Info()
		opened = append(opened, audio.Input{Path: path, Source: src})
		infos = append(infos, info)

		log.Debug("opened input",
			"path", path,
			"format", info.Kind,
			"sample_rate", info.SampleRate,
			"channels", info.Channels,
			"frames", info.Frames)
	}

	plan, err := audio.PlanChannels(infos)
	if err != nil {
		return err
	}

	outInfo := audio.Info{
		Kind:       format.Container.String(),
		SampleRate: plan.SampleRate,
		Channels:   plan.Channels,
		Frames:     plan.Frames,
		Encoding:   format.Encoding(),
	}

	if opts.Verbose != nil {
		if err := writeSummaries(opts.Verbose, opened, output, outInfo); err != nil {
			return err
		}
	}

	sink, err := formats.Create(output, format, plan.SampleRate, plan.Channels)
	if err != nil {
		return err
	}
	defer release(&err, output, sink)

	log.Debug("created output",
		"path", output,
		"format", format.String(),
		"channels", plan.Channels,
		"frames", plan.Frames)

	if opts.OnOutput != nil {
		opts.OnOutput(output, outInfo)
	}

	il, err := audio.NewInterleaver(opened, audio.Output{Path: output, Sink: sink},
		format.Representation, opts.BlockFrames, plan.Frames)
	if err != nil {
		return err
	}
	il.Progress = opts.Progress

	blockFrames := int64(opts.BlockFrames)
	log.Debug("packing",
		"blocks", (plan.Frames+blockFrames-1)/blockFrames,
		"block_frames", opts.BlockFrames)

	if err := il.Run(); err != nil {
		return err
	}

	log.Debug("truncated output", "path", output, "frames", plan.Frames)

	return nil
}

// release closes c and joins a failure into err.
func release(err *error, path string, c io.Closer) {
	if cerr := c.Close(); cerr != nil {
		*err = errors.Join(*err, &audio.IOError{Op: "close", Path: path, Err: cerr})
	}
}
