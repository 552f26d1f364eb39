// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int32, 2*4096)
//	frames, err := source.ReadInt(buf)
//
// # Output Format
//
// go-mp3 always produces 16 bit stereo, so the source reports:
//   - Channels: 2, mono files are duplicated by the decoder
//   - Bit depth: 16
//   - Sample rate: taken from the first frame
//
// The frame count is derived from the decoded length, which go-mp3 computes
// by scanning the stream once when the input is seekable.
//
// # Limitations
//
//   - Decoding only
//   - A truncated last frame ends the stream early
package mp3
