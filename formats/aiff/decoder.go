// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audpack/audio"
)

// Kind names the container in stream summaries.
const Kind = "AIFF (Apple/SGI)"

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// reader streams integer samples out of an aiffReader.
type reader struct {
	dec aiffReader
	buf goaudio.IntBuffer
}

func (r *reader) read(dst []int) (int, error) {
	r.buf.Data = dst
	return r.dec.PCMBuffer(&r.buf)
}

type Decoder struct{}

// Decode opens an uncompressed AIFF or AIFF-C stream of 8, 16, 24 or 32 bit
// signed PCM.
func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := aiff.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAiffFile, err)
	}
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	if enc := string(dec.Encoding[:]); enc != "\x00\x00\x00\x00" && enc != "NONE" {
		return nil, fmt.Errorf("%w: %q", ErrCompressed, enc)
	}

	bitDepth := int(dec.BitDepth)
	if audio.PCMEncoding(bitDepth) == audio.EncodingUnknown {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	info := audio.Info{
		Kind:       Kind,
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		Frames:     int64(dec.NumSampleFrames),
		Encoding:   audio.PCMEncoding(bitDepth),
	}

	rd := &reader{
		dec: dec,
		buf: goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
	}

	return audio.NewIntStream(info, bitDepth, rd.read, nil), nil
}
