// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding.
//
// Decoding uses github.com/go-audio/aiff. Writing is done by Writer.
//
// # Supported Formats
//
// Decoder:
//   - AIFF PCM 8, 16, 24 and 32 bit
//   - AIFF-C files with compression type NONE
//
// Writer:
//   - FORM/AIFF, signed PCM 8, 16, 24 and 32 bit
//   - FORM/AIFC, fl32 and fl64 floating point
//
// Compressed AIFF-C is refused with ErrCompressed.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
//
// # Writing AIFF Files
//
//	file, _ := os.Create("output.aiff")
//	w, err := aiff.NewWriter(file, 44100, 4, audio.Int16)
//	err = w.WriteBlock(block, frames)
//	err = w.Close()
//
// Blocks use the audio package's little-endian block layout; Writer converts
// them to big-endian on the way out.
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//   - Stores 8 bit samples signed (WAV stores them unsigned)
package aiff
