// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds sources, sinks and fixtures shared by the tests
// of the audio packages.
package audiotest

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"slices"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audpack/audio"
)

// NewIntSource creates a source over interleaved signed samples of bitDepth
// bits. At most chunk frames are returned per read when chunk > 0, to
// exercise callers that must cope with short reads.
func NewIntSource(sampleRate, channels, bitDepth int, samples []int, chunk int) *audio.IntStream {
	info := audio.Info{
		Kind:       "mock",
		SampleRate: sampleRate,
		Channels:   channels,
		Frames:     int64(len(samples) / channels),
		Encoding:   audio.PCMEncoding(bitDepth),
	}

	offset := 0
	read := func(dst []int) (int, error) {
		n := len(dst)
		if chunk > 0 {
			n = min(n, chunk*channels)
		}
		n = copy(dst[:n], samples[offset:])
		offset += n

		return n, nil
	}

	return audio.NewIntStream(info, bitDepth, read, nil)
}

// NewMonoSource is NewIntSource for one 16 bit channel.
func NewMonoSource(sampleRate int, samples ...int) *audio.IntStream {
	return NewIntSource(sampleRate, 1, 16, samples, 0)
}

// NewSineSource creates a float source playing a sine wave on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *audio.FloatStream {
	info := audio.Info{
		Kind:       "mock",
		SampleRate: sampleRate,
		Channels:   channels,
		Frames:     int64(frames),
		Encoding:   audio.EncodingFloat,
	}

	generated := 0
	read := func(dst []float32) (int, error) {
		n := 0
		for ; n+channels <= len(dst) && generated < frames; generated++ {
			v := float32(0.5 * math.Sin(2*math.Pi*frequency*float64(generated)/float64(sampleRate)))
			for range channels {
				dst[n] = v
				n++
			}
		}

		return n, nil
	}

	return audio.NewFloatStream(info, read, nil)
}

// ErrInjected is returned by FailingSource and FailingSink.
var ErrInjected = errors.New("injected failure")

// FailingSource reports Info like a healthy source but fails every read.
type FailingSource struct {
	Meta   audio.Info
	Closed int
}

func (f *FailingSource) Info() audio.Info                    { return f.Meta }
func (f *FailingSource) ReadInt(dst []int32) (int, error)     { return 0, ErrInjected }
func (f *FailingSource) ReadFloat(dst []float64) (int, error) { return 0, ErrInjected }
func (f *FailingSource) Close() error                         { f.Closed++; return nil }

// MemSink is an in-memory audio.Sink recording the raw block bytes.
type MemSink struct {
	Representation audio.Representation
	Channels       int

	Data      []byte
	Blocks    int
	Truncated bool
	Closed    bool
}

func NewMemSink(r audio.Representation, channels int) *MemSink {
	return &MemSink{Representation: r, Channels: channels}
}

func (m *MemSink) frameSize() int {
	return m.Channels * m.Representation.Width()
}

func (m *MemSink) WriteBlock(block []byte, frames int) error {
	m.Data = append(m.Data, block[:frames*m.frameSize()]...)
	m.Blocks++

	return nil
}

func (m *MemSink) Truncate(frames int64) error {
	if size := int(frames) * m.frameSize(); size < len(m.Data) {
		m.Data = m.Data[:size]
	}
	m.Truncated = true

	return nil
}

func (m *MemSink) Close() error {
	m.Closed = true
	return nil
}

// Frames returns the number of whole frames held.
func (m *MemSink) Frames() int {
	return len(m.Data) / m.frameSize()
}

// Ints decodes integer block data back to samples of the sink's bit depth.
func (m *MemSink) Ints() []int {
	out := make([]int, len(m.Data)/4)
	shift := 32 - m.Representation.BitDepth()
	for i := range out {
		out[i] = int(int32(binary.LittleEndian.Uint32(m.Data[i*4:])) >> shift)
	}

	return out
}

// Floats decodes Float32 or Float64 block data.
func (m *MemSink) Floats() []float64 {
	width := m.Representation.Width()
	out := make([]float64, len(m.Data)/width)
	for i := range out {
		if width == 8 {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(m.Data[i*8:]))
		} else {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(m.Data[i*4:])))
		}
	}

	return out
}

// FailingSink fails the write of block number FailAt (counting from zero);
// a negative FailAt never fails a write. FailTruncate and FailClose make
// those calls fail after recording them.
type FailingSink struct {
	MemSink
	FailAt       int
	FailTruncate bool
	FailClose    bool
}

func (f *FailingSink) WriteBlock(block []byte, frames int) error {
	if f.Blocks == f.FailAt {
		return ErrInjected
	}

	return f.MemSink.WriteBlock(block, frames)
}

func (f *FailingSink) Truncate(frames int64) error {
	f.Truncated = true
	if f.FailTruncate {
		return ErrInjected
	}

	return f.MemSink.Truncate(frames)
}

func (f *FailingSink) Close() error {
	f.Closed = true
	if f.FailClose {
		return ErrInjected
	}

	return nil
}

// WriteWAV writes a PCM WAV fixture holding interleaved signed samples.
// 8 bit samples are stored with the unsigned offset WAV requires.
func WriteWAV(path string, sampleRate, channels, bitDepth int, samples []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if bitDepth == 8 {
		samples = slices.Clone(samples)
		for i := range samples {
			samples[i] += 128
		}
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
