// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Info describes an opened stream.
type Info struct {
	// Kind is a human readable container name, e.g. "WAV (Microsoft)".
	Kind string
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// Frames is the total number of frames in the stream.
	Frames int64
	// Encoding of the stored samples.
	Encoding Encoding
}

// Source is an opened input stream that can deliver its frames in either
// of the two intermediate sample forms used while packing.
type Source interface {
	Info() Info

	// ReadInt fills dst with interleaved full-scale int32 samples and
	// returns the number of frames read. len(dst) should be a multiple of
	// Info().Channels. Returns io.EOF when the stream is finished.
	ReadInt(dst []int32) (frames int, err error)

	// ReadFloat is ReadInt for samples normalised to [-1, 1].
	ReadFloat(dst []float64) (frames int, err error)

	// Close releases any resources.
	Close() error
}

// Sink is an opened output stream.
type Sink interface {
	// WriteBlock writes frames interleaved frames. block holds the samples
	// in the layout of the sink's Representation, little-endian.
	WriteBlock(block []byte, frames int) error

	// Truncate shortens the stream to exactly frames frames. Truncating to
	// the current length or beyond is a no-op.
	Truncate(frames int64) error

	// Close finalises the container and releases the stream.
	Close() error
}

// Decoder constructs a Source from an input stream.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "aiff", "flac").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}
