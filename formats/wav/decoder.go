// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audpack/audio"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// Kind names the container in stream summaries.
const Kind = "WAV (Microsoft)"

// pcmReader is the part of wav.Decoder the source needs, to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// reader streams integer samples out of a pcmReader.
type reader struct {
	dec      pcmReader
	buf      goaudio.IntBuffer
	unsigned bool
}

func (r *reader) read(dst []int) (int, error) {
	r.buf.Data = dst
	n, err := r.dec.PCMBuffer(&r.buf)
	if r.unsigned {
		// 8 bit WAV samples are stored offset by 128.
		for i := range n {
			dst[i] -= 128
		}
	}

	return n, err
}

type Decoder struct{}

// Decode opens an integer PCM WAV stream of 8, 16, 24 or 32 bits.
// WAVE_FORMAT_EXTENSIBLE input is accepted only with the PCM SubFormat.
func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	// go-audio/wav skips the fmt extension, so the SubFormat is read here.
	// Files it cannot walk are left to IsValidFile below.
	if code, err := sampleFormat(r); err == nil && code != formatPCM {
		return nil, fmt.Errorf("%w: sample format %d", ErrUnsupportedWavFormat, code)
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading wav header: %w", err)
	}

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	if audio.PCMEncoding(bitDepth) == audio.EncodingUnknown {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav data: %w", err)
	}

	info := audio.Info{
		Kind:       Kind,
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		Frames:     int64(dec.PCMSize) / int64(channels*bitDepth/8),
		Encoding:   audio.PCMEncoding(bitDepth),
	}
	if bitDepth == 8 {
		info.Encoding = audio.EncodingPCMU8
	}

	rd := &reader{
		dec:      dec,
		buf:      goaudio.IntBuffer{Format: dec.Format(), SourceBitDepth: bitDepth},
		unsigned: bitDepth == 8,
	}

	return audio.NewIntStream(info, bitDepth, rd.read, nil), nil
}
