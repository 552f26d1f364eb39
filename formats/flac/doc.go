// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// Frames are decoded one at a time and flattened into interleaved samples,
// so a read may span several FLAC frames or part of one. The returned
// audio.Source reports the bit depth of the stream; ReadInt scales it to
// full-scale int32.
//
//	src, err := flac.Decoder{}.Decode(file)
package flac
