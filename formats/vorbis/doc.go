// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files. Vorbis decodes to float32 samples, so the returned source is an
// audio.FloatStream: ReadFloat passes samples through and ReadInt scales them
// to full-scale int32.
//
//	file, _ := os.Open("audio.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//
// # Channel Layout
//
// Samples are interleaved in Vorbis channel order:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// oggvorbis returns one decoded packet per Read; the decoder keeps reading
// until the caller's buffer is full so frames are never split.
package vorbis
