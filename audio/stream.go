// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"
)

// stream is the per-input state of an Interleaver.
type stream struct {
	path      string
	src       Source
	channels  int
	frameSize int // channels * output sample width

	block  []byte
	cursor int
	eof    bool

	ints   []int32
	floats []float64
}

func newStream(in Input, width, blockFrames int) *stream {
	channels := in.Source.Info().Channels
	frameSize := channels * width

	return &stream{
		path:      in.Path,
		src:       in.Source,
		channels:  channels,
		frameSize: frameSize,
		block:     make([]byte, frameSize*blockFrames),
	}
}

// codec moves frames of one representation from a Source into a block
// buffer. It is chosen once per Interleaver.
type codec struct {
	width int
	read  func(s *stream, at, frames int) (int, error)
}

func codecFor(r Representation) codec {
	switch r {
	case Float32:
		return codec{width: 4, read: readFloat32}
	case Float64:
		return codec{width: 8, read: readFloat64}
	}

	return codec{width: 4, read: readInt}
}

func (s *stream) intScratch(samples int) []int32 {
	if cap(s.ints) < samples {
		s.ints = make([]int32, samples)
	}

	return s.ints[:samples]
}

func (s *stream) floatScratch(samples int) []float64 {
	if cap(s.floats) < samples {
		s.floats = make([]float64, samples)
	}

	return s.floats[:samples]
}

func readInt(s *stream, at, frames int) (int, error) {
	buf := s.intScratch(frames * s.channels)
	n, err := s.src.ReadInt(buf)

	off := at * s.frameSize
	for _, v := range buf[:n*s.channels] {
		binary.LittleEndian.PutUint32(s.block[off:], uint32(v))
		off += 4
	}

	return n, err
}

func readFloat32(s *stream, at, frames int) (int, error) {
	buf := s.floatScratch(frames * s.channels)
	n, err := s.src.ReadFloat(buf)

	off := at * s.frameSize
	for _, v := range buf[:n*s.channels] {
		binary.LittleEndian.PutUint32(s.block[off:], math.Float32bits(float32(v)))
		off += 4
	}

	return n, err
}

func readFloat64(s *stream, at, frames int) (int, error) {
	buf := s.floatScratch(frames * s.channels)
	n, err := s.src.ReadFloat(buf)

	off := at * s.frameSize
	for _, v := range buf[:n*s.channels] {
		binary.LittleEndian.PutUint64(s.block[off:], math.Float64bits(v))
		off += 8
	}

	return n, err
}
