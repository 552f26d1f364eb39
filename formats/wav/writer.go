// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audpack/audio"
	"github.com/ik5/audpack/utils"
)

// File is the output a Writer needs: seekable for header updates and
// truncatable for trimming the last block. *os.File satisfies it.
type File interface {
	io.WriteSeeker
	io.Closer
	Truncate(size int64) error
}

// Writer streams frames into a RIFF/WAVE file. The header is written up
// front and its sizes are patched on Truncate and Close.
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
// frames of the given representation. Int8 is refused since 8 bit WAV
// data is unsigned.
func NewWriter(f File, sampleRate, channels int, r audio.Representation) (*Writer, error) {
	switch r {
	case audio.Int16, audio.Int24, audio.Int32, audio.Float32, audio.Float64:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOutput, r)
	}
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	w := &Writer{
		f:          f,
		rep:        r,
		sampleRate: sampleRate,
		channels:   channels,
	}

	hdr := w.header(false)
	if _, err := f.Write(hdr); err != nil {
		return nil, fmt.Errorf("writing wav header: %w", err)
	}
	w.dataPos = int64(len(hdr))

	return w, nil
}

func (w *Writer) blockAlign() int {
	return w.channels * w.rep.BitDepth() / 8
}

func (w *Writer) dataSize() int64 {
	return w.frames * int64(w.blockAlign())
}

// header builds the full header for the frames written so far. padded adds
// the trailing pad byte of an odd sized data chunk to the RIFF size.
func (w *Writer) header(padded bool) []byte {
	isFloat := w.rep.IsFloat()
	bits := w.rep.BitDepth()
	blockAlign := w.blockAlign()
	dataSize := w.dataSize()

	fmtSize, tag := 16, formatPCM
	if isFloat {
		// Non-PCM formats carry a cbSize field and a fact chunk.
		fmtSize, tag = 18, formatIEEEFloat
	}

	riffSize := 4 + 8 + int64(fmtSize) + 8 + dataSize
	if isFloat {
		riffSize += 12
	}
	if padded && dataSize%2 == 1 {
		riffSize++
	}

	h := make([]byte, 0, 58)
	h = append(h, "RIFF"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(riffSize))
	h = append(h, "WAVE"...)

	h = append(h, "fmt "...)
	h = binary.LittleEndian.AppendUint32(h, uint32(fmtSize))
	h = binary.LittleEndian.AppendUint16(h, uint16(tag))
	h = binary.LittleEndian.AppendUint16(h, uint16(w.channels))
	h = binary.LittleEndian.AppendUint32(h, uint32(w.sampleRate))
	h = binary.LittleEndian.AppendUint32(h, uint32(w.sampleRate*blockAlign))
	h = binary.LittleEndian.AppendUint16(h, uint16(blockAlign))
	h = binary.LittleEndian.AppendUint16(h, uint16(bits))

	if isFloat {
		h = binary.LittleEndian.AppendUint16(h, 0)
		h = append(h, "fact"...)
		h = binary.LittleEndian.AppendUint32(h, 4)
		h = binary.LittleEndian.AppendUint32(h, uint32(w.frames))
	}

	h = append(h, "data"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(dataSize))

	return h
}

// maxDataSize is the largest data chunk whose padded RIFF size still fits
// the 32 bit size fields.
func (w *Writer) maxDataSize() int64 {
	return math.MaxUint32 - (w.dataPos - 8) - 1
}

// WriteBlock appends frames frames held in the block layout of the
// writer's representation. A block that would take the file past the
// RIFF size limit is refused with ErrOutputTooLarge.
func (w *Writer) WriteBlock(block []byte, frames int) error {
	if w.dataSize()+int64(frames*w.blockAlign()) > w.maxDataSize() {
		return fmt.Errorf("%w: %d frames", ErrOutputTooLarge, w.frames+int64(frames))
	}

	samples := frames * w.channels
	out := w.encode(block[:samples*w.rep.Width()], samples)

	if _, err := w.f.Write(out); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	w.frames += int64(frames)

	return nil
}

func (w *Writer) encode(block []byte, samples int) []byte {
	if w.rep.IsFloat() {
		// Block floats are already little-endian IEEE values.
		return block
	}

	size := samples * w.rep.BitDepth() / 8
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	out := w.buf[:size]

	depth := w.rep.BitDepth()
	for i := range samples {
		v := utils.Int32ToDepth(int32(binary.LittleEndian.Uint32(block[i*4:])), depth)
		switch w.rep {
		case audio.Int16:
			binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
		case audio.Int24:
			out[i*3] = byte(v)
			out[i*3+1] = byte(v >> 8)
			out[i*3+2] = byte(v >> 16)
		case audio.Int32:
			binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
		}
	}

	return out
}

// Frames returns the number of frames in the file.
func (w *Writer) Frames() int64 { return w.frames }

// Truncate shortens the data chunk to frames frames.
func (w *Writer) Truncate(frames int64) error {
	if frames >= w.frames {
		return nil
	}

	w.frames = max(frames, 0)
	if err := w.f.Truncate(w.dataPos + w.dataSize()); err != nil {
		return fmt.Errorf("truncating wav data: %w", err)
	}

	return w.patch(false)
}

// patch rewrites the header in place and returns to the end of the file.
func (w *Writer) patch(padded bool) error {
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking wav header: %w", err)
	}
	if _, err := w.f.Write(w.header(padded)); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	if _, err := w.f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seeking wav end: %w", err)
	}

	return nil
}

// Close pads an odd sized data chunk, finalises the header and closes the
// file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.finish()
	if cerr := w.f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing wav file: %w", cerr)
	}

	return err
}

func (w *Writer) finish() error {
	if w.dataSize()%2 == 1 {
		if _, err := w.f.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing wav pad byte: %w", err)
		}
	}

	return w.patch(true)
}
