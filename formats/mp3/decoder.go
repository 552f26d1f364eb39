// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audpack/audio"
)

// Kind names the container in stream summaries.
const Kind = "MPEG Audio"

// go-mp3 always produces 16 bit little-endian stereo.
const (
	channels      = 2
	bytesPerFrame = 4
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
}

type reader struct {
	dec mp3Reader
	buf []byte
}

func (r *reader) read(dst []int) (int, error) {
	need := len(dst) * 2
	if cap(r.buf) < need {
		r.buf = make([]byte, need)
	}
	r.buf = r.buf[:need]

	// ReadFull keeps frames whole across the decoder's short reads.
	n, err := io.ReadFull(r.dec, r.buf)
	samples := n / 2
	for i := range samples {
		dst[i] = int(int16(binary.LittleEndian.Uint16(r.buf[2*i:])))
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := audio.Info{
		Kind:       Kind,
		SampleRate: dec.SampleRate(),
		Channels:   channels,
		Frames:     max(dec.Length(), 0) / bytesPerFrame,
		Encoding:   audio.EncodingMP3,
	}

	rd := &reader{dec: dec}

	return audio.NewIntStream(info, 16, rd.read, nil), nil
}
