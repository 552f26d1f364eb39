// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audpack/audio"
)

// Kind names the container in stream summaries.
const Kind = "FLAC (Free Lossless Audio Codec)"

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

// reader flattens FLAC frames into interleaved samples. A frame larger than
// the caller's buffer is held in pending until it has been fully consumed.
type reader struct {
	stream   frameParser
	channels int
	pending  []int
	pos      int
}

func (r *reader) next() error {
	f, err := r.stream.ParseNext()
	if err != nil {
		return err
	}
	if len(f.Subframes) != r.channels {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(f.Subframes), r.channels)
	}

	n := int(f.BlockSize)
	for _, sub := range f.Subframes {
		n = min(n, len(sub.Samples))
	}

	r.pending = r.pending[:0]
	for i := range n {
		for _, sub := range f.Subframes {
			r.pending = append(r.pending, int(sub.Samples[i]))
		}
	}
	r.pos = 0

	return nil
}

func (r *reader) read(dst []int) (int, error) {
	total := 0
	for total < len(dst) {
		if r.pos == len(r.pending) {
			if err := r.next(); err != nil {
				return total, err
			}
			continue
		}

		n := copy(dst[total:], r.pending[r.pos:])
		r.pos += n
		total += n
	}

	return total, nil
}

type Decoder struct{}

func (Decoder) Decode(rs io.ReadSeeker) (audio.Source, error) {
	// Hide Close from flac.New so the caller keeps ownership of the file.
	stream, err := flac.New(struct{ io.Reader }{rs})
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	bitDepth := int(stream.Info.BitsPerSample)
	if bitDepth < 4 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	info := audio.Info{
		Kind:       Kind,
		SampleRate: int(stream.Info.SampleRate),
		Channels:   int(stream.Info.NChannels),
		Frames:     int64(stream.Info.NSamples),
		Encoding:   audio.PCMEncoding(bitDepth),
	}
	if info.Encoding == audio.EncodingUnknown {
		info.Encoding = audio.EncodingFLAC
	}

	rd := &reader{stream: stream, channels: info.Channels}

	return audio.NewIntStream(info, bitDepth, rd.read, nil), nil
}
