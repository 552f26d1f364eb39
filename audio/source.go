// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"

	"github.com/ik5/audpack/utils"
)

// IntStream adapts a reader of native signed integer samples to Source.
type IntStream struct {
	info     Info
	bitDepth int
	read     func(dst []int) (int, error)
	close    func() error
	tmp      []int
}

// NewIntStream returns a Source over read, which fills dst with interleaved
// signed samples of bitDepth bits and returns the number of samples written.
// A zero count marks the end of the stream. close may be nil.
func NewIntStream(info Info, bitDepth int, read func(dst []int) (int, error), close func() error) *IntStream {
	return &IntStream{
		info:     info,
		bitDepth: bitDepth,
		read:     read,
		close:    close,
	}
}

func (s *IntStream) Info() Info    { return s.info }
func (s *IntStream) BitDepth() int { return s.bitDepth }

func (s *IntStream) Close() error {
	if s.close == nil {
		return nil
	}

	return s.close()
}

func (s *IntStream) fill(samples int) (int, error) {
	if samples%s.info.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if cap(s.tmp) < samples {
		s.tmp = make([]int, samples)
	}
	s.tmp = s.tmp[:samples]

	n, err := s.read(s.tmp)

	return framesOf(n, s.info.Channels, err)
}

func (s *IntStream) ReadInt(dst []int32) (int, error) {
	frames, err := s.fill(len(dst))
	for i, v := range s.tmp[:frames*s.info.Channels] {
		dst[i] = utils.ScaleToInt32(v, s.bitDepth)
	}

	return frames, err
}

func (s *IntStream) ReadFloat(dst []float64) (int, error) {
	frames, err := s.fill(len(dst))
	for i, v := range s.tmp[:frames*s.info.Channels] {
		dst[i] = utils.IntToFloat(v, s.bitDepth)
	}

	return frames, err
}

// FloatStream adapts a reader of native float32 samples to Source.
type FloatStream struct {
	info  Info
	read  func(dst []float32) (int, error)
	close func() error
	tmp   []float32
}

// NewFloatStream is NewIntStream for decoders producing float32 samples
// normalised to [-1, 1].
func NewFloatStream(info Info, read func(dst []float32) (int, error), close func() error) *FloatStream {
	return &FloatStream{
		info:  info,
		read:  read,
		close: close,
	}
}

func (s *FloatStream) Info() Info { return s.info }

func (s *FloatStream) Close() error {
	if s.close == nil {
		return nil
	}

	return s.close()
}

func (s *FloatStream) fill(samples int) (int, error) {
	if samples%s.info.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if cap(s.tmp) < samples {
		s.tmp = make([]float32, samples)
	}
	s.tmp = s.tmp[:samples]

	n, err := s.read(s.tmp)

	return framesOf(n, s.info.Channels, err)
}

func (s *FloatStream) ReadInt(dst []int32) (int, error) {
	frames, err := s.fill(len(dst))
	for i, v := range s.tmp[:frames*s.info.Channels] {
		dst[i] = utils.FloatToInt32(float64(v))
	}

	return frames, err
}

func (s *FloatStream) ReadFloat(dst []float64) (int, error) {
	frames, err := s.fill(len(dst))
	for i, v := range s.tmp[:frames*s.info.Channels] {
		dst[i] = float64(v)
	}

	return frames, err
}

// framesOf turns a native sample count into whole frames. An io.EOF that
// arrives together with data is held back until the next call, which then
// sees a zero count.
func framesOf(samples, channels int, err error) (int, error) {
	frames := samples / channels
	if frames == 0 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, io.EOF
		}

		return 0, err
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}

	return frames, err
}
