// SPDX-License-Identifier: EPL-2.0

// Package formats opens input files with the decoder matching their format
// and creates output files in the negotiated container.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audpack/audio"
	"github.com/ik5/audpack/formats/aiff"
	"github.com/ik5/audpack/formats/flac"
	"github.com/ik5/audpack/formats/mp3"
	"github.com/ik5/audpack/formats/vorbis"
	"github.com/ik5/audpack/formats/wav"
)

var (
	ErrUnknownFormat     = errors.New("unrecognised audio file format")
	ErrUnknownContainer  = errors.New("unknown output container")
	ErrNoDecoderForInput = errors.New("no decoder registered for format")
)

// Format keys used by the registry.
const (
	WAV    = "wav"
	AIFF   = "aiff"
	MP3    = "mp3"
	Vorbis = "ogg"
	FLAC   = "flac"
)

var extensions = map[string]string{
	".wav":  WAV,
	".wave": WAV,
	".aif":  AIFF,
	".aiff": AIFF,
	".aifc": AIFF,
	".mp3":  MP3,
	".ogg":  Vorbis,
	".oga":  Vorbis,
	".flac": FLAC,
}

// NewRegistry returns a registry holding every decoder of this module.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})
	reg.Register(MP3, mp3.Decoder{})
	reg.Register(Vorbis, vorbis.Decoder{})
	reg.Register(FLAC, flac.Decoder{})

	return reg
}

// Default is the registry used by Open.
var Default = NewRegistry()

// Sniff identifies a format from the first bytes of a file. It returns an
// empty string when nothing matches.
func Sniff(head []byte) string {
	switch {
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return WAV
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC"))):
		return AIFF
	case bytes.HasPrefix(head, []byte("fLaC")):
		return FLAC
	case bytes.HasPrefix(head, []byte("OggS")):
		return Vorbis
	case bytes.HasPrefix(head, []byte("ID3")):
		return MP3
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return MP3
	}

	return ""
}

// Detect picks the format of path from its extension, falling back to the
// content of head when the extension is unknown.
func Detect(path string, head []byte) string {
	if key, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return key
	}

	return Sniff(head)
}

// fileSource closes the underlying file together with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// Open opens path with the decoders of Default.
func Open(path string) (audio.Source, error) {
	return OpenWith(Default, path)
}

// OpenWith opens path and decodes it with the matching decoder from reg.
// Errors are returned as *audio.IOError.
func OpenWith(reg *audio.Registry, path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &audio.IOError{Op: "open", Path: path, Err: err}
	}

	src, err := decode(reg, f, path)
	if err != nil {
		f.Close()
		return nil, &audio.IOError{Op: "open", Path: path, Err: err}
	}

	return &fileSource{Source: src, f: f}, nil
}

func decode(reg *audio.Registry, f *os.File, path string) (audio.Source, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := Detect(path, head[:n])
	if key == "" {
		return nil, ErrUnknownFormat
	}

	dec, ok := reg.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDecoderForInput, key)
	}

	return dec.Decode(f)
}

// Create creates path and returns a sink writing the given format. On error
// the partially created file is removed.
func Create(path string, format audio.OutputFormat, sampleRate, channels int) (audio.Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &audio.IOError{Op: "create", Path: path, Err: err}
	}

	var sink audio.Sink
	switch format.Container {
	case audio.WAV:
		sink, err = wav.NewWriter(f, sampleRate, channels, format.Representation)
	case audio.AIFF:
		sink, err = aiff.NewWriter(f, sampleRate, channels, format.Representation)
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownContainer, format.Container)
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, &audio.IOError{Op: "create", Path: path, Err: err}
	}

	return sink, nil
}
