// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav. Writing is done by Writer, which
// produces PCM and IEEE float files and can truncate its output.
//
// # Supported Formats
//
// Decoder:
//   - PCM 8 (unsigned), 16, 24 and 32 bit
//   - WAVE_FORMAT_EXTENSIBLE files carrying PCM
//   - Any channel count and sample rate
//
// Writer:
//   - PCM 16, 24 and 32 bit (format tag 1)
//   - IEEE float 32 and 64 bit (format tag 3, with a fact chunk)
//
// 8 bit WAV data is unsigned by definition, so Writer refuses audio.Int8.
// Writer never emits WAVE_FORMAT_EXTENSIBLE, so files with more than two
// channels or more than 16 bits carry a plain fmt chunk. RIFF sizes are 32
// bit: a block that would grow the file past 4 GiB fails with
// ErrOutputTooLarge.
//
// The decoder reads the fmt extension with github.com/go-audio/riff and
// refuses extensible files whose SubFormat is not PCM.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
//
// # Writing WAV Files
//
// Writer takes blocks in the audio package's block layout: little-endian
// full-scale int32 for integer representations, float32 or float64 for the
// float ones.
//
//	file, _ := os.Create("output.wav")
//	w, err := wav.NewWriter(file, 48000, 2, audio.Int24)
//	err = w.WriteBlock(block, frames)
//	err = w.Truncate(total)
//	err = w.Close()
//
// The header is written with zero sizes when the Writer is created and
// patched by Truncate and Close.
//
// # File Format
//
// WAV files consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk: format tag, channels, sample rate, block align, bit depth
//   - fact chunk for float data
//   - data chunk: interleaved samples, padded to an even size
package wav
