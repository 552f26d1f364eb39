// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audpack/audio"
)

// aifcVersion is the only AIFF-C format version timestamp in use.
const aifcVersion = 0xA2805140

// File is the output a Writer needs. *os.File satisfies it.
type File interface {
	io.WriteSeeker
	io.Closer
	Truncate(size int64) error
}

// Writer streams big-endian frames into an AIFF file, or an AIFF-C file
// for floating point data.
type Writer struct {
	f          File
	rep        audio.Representation
	sampleRate int
	channels   int

	frames  int64
	dataPos int64
	buf     []byte
	closed  bool
}

// NewWriter writes a provisional header to f and returns a Writer for
// frames of the given representation.
func NewWriter(f File, sampleRate, channels int, r audio.Representation) (*Writer, error) {
	if r.BitDepth() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOutput, r)
	}
	if channels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	w := &Writer{
		f:          f,
		rep:        r,
		sampleRate: sampleRate,
		channels:   channels,
	}

	hdr := w.header(false)
	if _, err := f.Write(hdr); err != nil {
		return nil, fmt.Errorf("writing aiff header: %w", err)
	}
	w.dataPos = int64(len(hdr))

	return w, nil
}

func (w *Writer) frameSize() int {
	return w.channels * w.rep.BitDepth() / 8
}

func (w *Writer) dataSize() int64 {
	return w.frames * int64(w.frameSize())
}

func compression(r audio.Representation) (id, name string) {
	if r == audio.Float64 {
		return "fl64", "64-bit floating point"
	}

	return "fl32", "32-bit floating point"
}

func (w *Writer) header(padded bool) []byte {
	isFloat := w.rep.IsFloat()
	dataSize := w.dataSize()

	commSize := 18
	var compID, compName string
	if isFloat {
		compID, compName = compression(w.rep)
		// The Pascal string is padded to an even length.
		commSize += 4 + 1 + len(compName) + (1+len(compName))%2
	}

	formSize := 4 + 8 + int64(commSize) + 16 + dataSize
	formType := "AIFF"
	if isFloat {
		formSize += 12
		formType = "AIFC"
	}
	if padded && dataSize%2 == 1 {
		formSize++
	}

	h := make([]byte, 0, 96)
	h = append(h, "FORM"...)
	h = binary.BigEndian.AppendUint32(h, uint32(formSize))
	h = append(h, formType...)

	if isFloat {
		h = append(h, "FVER"...)
		h = binary.BigEndian.AppendUint32(h, 4)
		h = binary.BigEndian.AppendUint32(h, aifcVersion)
	}

	rate := goaudio.IntToIEEEFloat(w.sampleRate)

	h = append(h, "COMM"...)
	h = binary.BigEndian.AppendUint32(h, uint32(commSize))
	h = binary.BigEndian.AppendUint16(h, uint16(w.channels))
	h = binary.BigEndian.AppendUint32(h, uint32(w.frames))
	h = binary.BigEndian.AppendUint16(h, uint16(w.rep.BitDepth()))
	h = append(h, rate[:]...)

	if isFloat {
		h = append(h, compID...)
		h = append(h, byte(len(compName)))
		h = append(h, compName...)
		if (1+len(compName))%2 == 1 {
			h = append(h, 0)
		}
	}

	h = append(h, "SSND"...)
	h = binary.BigEndian.AppendUint32(h, uint32(8+dataSize))
	h = binary.BigEndian.AppendUint32(h, 0) // offset
	h = binary.BigEndian.AppendUint32(h, 0) // block size

	return h
}

func (w *Writer) maxDataSize() int64 {
	return math.MaxUint32 - (w.dataPos - 8) - 1
}

// WriteBlock appends frames frames held in the block layout of the
// writer's representation. Blocks past the 32 bit FORM size limit are
// refused with ErrOutputTooLarge.
func (w *Writer) WriteBlock(block []byte, frames int) error {
	if w.dataSize()+int64(frames*w.frameSize()) > w.maxDataSize() {
		return fmt.Errorf("%w: %d frames", ErrOutputTooLarge, w.frames+int64(frames))
	}

	samples := frames * w.channels
	if _, err := w.f.Write(w.encode(block, samples)); err != nil {
		return fmt.Errorf("writing aiff data: %w", err)
	}
	w.frames += int64(frames)

	return nil
}

func (w *Writer) encode(block []byte, samples int) []byte {
	size := samples * w.rep.BitDepth() / 8
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	out := w.buf[:size]

	switch w.rep {
	case audio.Float64:
		for i := range samples {
			binary.BigEndian.PutUint64(out[i*8:], binary.LittleEndian.Uint64(block[i*8:]))
		}
		return out
	case audio.Float32:
		for i := range samples {
			binary.BigEndian.PutUint32(out[i*4:], binary.LittleEndian.Uint32(block[i*4:]))
		}
		return out
	}

	for i := range samples {
		v := binary.LittleEndian.Uint32(block[i*4:])
		switch w.rep {
		case audio.Int8:
			out[i] = byte(v >> 24)
		case audio.Int16:
			binary.BigEndian.PutUint16(out[i*2:], uint16(v>>16))
		case audio.Int24:
			out[i*3] = byte(v >> 24)
			out[i*3+1] = byte(v >> 16)
			out[i*3+2] = byte(v >> 8)
		case audio.Int32:
			binary.BigEndian.PutUint32(out[i*4:], v)
		}
	}

	return out
}

// Frames returns the number of frames in the file.
func (w *Writer) Frames() int64 { return w.frames }

// Truncate shortens the sound data to frames frames.
func (w *Writer) Truncate(frames int64) error {
	if frames >= w.frames {
		return nil
	}

	w.frames = max(frames, 0)
	if err := w.f.Truncate(w.dataPos + w.dataSize()); err != nil {
		return fmt.Errorf("truncating aiff data: %w", err)
	}

	return w.patch(false)
}

func (w *Writer) patch(padded bool) error {
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking aiff header: %w", err)
	}
	if _, err := w.f.Write(w.header(padded)); err != nil {
		return fmt.Errorf("writing aiff header: %w", err)
	}
	if _, err := w.f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seeking aiff end: %w", err)
	}

	return nil
}

// Close pads an odd sized sound data chunk, finalises the header and
// closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.finish()
	if cerr := w.f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing aiff file: %w", cerr)
	}

	return err
}

func (w *Writer) finish() error {
	if w.dataSize()%2 == 1 {
		if _, err := w.f.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing aiff pad byte: %w", err)
		}
	}

	return w.patch(true)
}
