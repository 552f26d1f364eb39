// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audpack/audio"
)

// Kind names the container in stream summaries.
const Kind = "OGG (Xiph Foundation)"

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	Read([]float32) (int, error)
}

type reader struct {
	dec oggReader
}

// read fills dst completely unless the stream ends, so that frames are
// never split between calls.
func (r *reader) read(dst []float32) (int, error) {
	total := 0
	for total < len(dst) {
		n, err := r.dec.Read(dst[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}

	return total, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := audio.Info{
		Kind:       Kind,
		SampleRate: dec.SampleRate(),
		Channels:   dec.Channels(),
		Frames:     dec.Length(),
		Encoding:   audio.EncodingVorbis,
	}

	rd := &reader{dec: dec}

	return audio.NewFloatStream(info, rd.read, nil), nil
}
