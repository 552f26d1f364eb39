// SPDX-License-Identifier: EPL-2.0

// Package audpack packs several audio files into one multichannel file.
//
// The channels of every input are written to the output in input order: the
// first output channel is the first channel of the first input and the last
// output channel is the last channel of the last input. Inputs may use
// different containers and sample formats but must share a sample rate. The
// output is as long as the longest input; shorter inputs are padded with
// silence.
//
// # Supported Formats
//
// Inputs are decoded by the formats subpackages:
//   - WAV via formats/wav (PCM 8 to 32 bit)
//   - AIFF and uncompressed AIFF-C via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// Outputs are AIFF (the default) or WAV holding 8, 16, 24 or 32 bit PCM, or
// 32 or 64 bit float. WAV cannot hold signed 8 bit data.
//
// # Quick Start
//
//	err := audpack.Pack([]string{"left.wav", "right.aiff"}, "out.aiff", audpack.Options{})
//
// Choose the output format and report progress:
//
//	opts := audpack.Options{
//	    Container:      audio.WAV,
//	    Representation: audio.Float32,
//	    Progress: func(done, total int64) {
//	        fmt.Printf("\r%3d%%", 100*done/max(total, 1))
//	    },
//	}
//	err := audpack.Pack(inputs, "out.wav", opts)
//
// # Errors
//
// Pack validates the options and the inputs before creating the output.
// Those failures are *audio.ConfigError; failures of the files themselves are
// *audio.IOError:
//
//	var cfg *audio.ConfigError
//	if errors.As(err, &cfg) && errors.Is(err, audio.ErrSampleRateMismatch) {
//	    // resample the inputs first
//	}
//
// # Lower Level Use
//
// The audio package exposes the pieces Pack is built from, so sources that do
// not come from files can be packed too:
//
//	plan, _ := audio.PlanChannels(infos)
//	il, _ := audio.NewInterleaver(inputs, output, audio.Int24, 2048, plan.Frames)
//	err := il.Run()
package audpack
