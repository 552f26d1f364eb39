// SPDX-License-Identifier: EPL-2.0

// Package audio provides the building blocks for packing several audio
// streams into one multichannel stream.
//
// This package contains:
//   - Source and Sink interfaces for opened input and output streams
//   - Representation and Container, negotiated into an OutputFormat
//   - PlanChannels for laying out output channels in input order
//   - Interleaver, the block loop that converts, pads and interleaves
//   - Format registry for decoder registration
//
// # Source Interface
//
// A Source delivers frames in one of two intermediate forms:
//
//	type Source interface {
//	    Info() Info
//	    ReadInt(dst []int32) (frames int, err error)
//	    ReadFloat(dst []float64) (frames int, err error)
//	    Close() error
//	}
//
// ReadInt returns full-scale int32 samples: a 16 bit sample of value 1 is
// returned as 1<<16. Writing it back at 16 bits restores the original value,
// and writing it at 24 bits gives 1<<8. ReadFloat returns samples normalised
// to [-1, 1].
//
// Decoders rarely implement Source directly. They wrap their native read in
// NewIntStream or NewFloatStream, which provide both forms.
//
// # Output Formats
//
// The output is described by a Container and a Representation:
//
//	format, err := audio.Negotiate(audio.WAV, audio.Int24)
//
// Negotiate refuses combinations the container cannot hold. 8 bit WAV data
// is unsigned, so WAV with Int8 is refused; AIFF accepts every
// representation.
//
// # Packing
//
// PlanChannels checks the inputs share a sample rate and fit in MaxChannels
// channels, and returns the frame count of the longest input:
//
//	plan, err := audio.PlanChannels(infos)
//
// The Interleaver then reads a block of frames from every input, pads
// exhausted inputs with silence, interleaves them in input order and writes
// the block to the output:
//
//	il, err := audio.NewInterleaver(inputs, output, format.Representation, 2048, plan.Frames)
//	err = il.Run()
//
// The last block may overshoot the longest input; Run truncates the output
// to exactly plan.Frames frames before returning.
//
// # Errors
//
// Problems with the options or with the combination of inputs are returned
// as *ConfigError. Failures of the underlying streams are returned as
// *IOError carrying the path of the stream:
//
//	var ioErr *audio.IOError
//	if errors.As(err, &ioErr) {
//	    fmt.Println("failed on", ioErr.Path)
//	}
package audio
