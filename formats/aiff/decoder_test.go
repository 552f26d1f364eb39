// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audpack/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	samples      []int
	returnErrors bool
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrClosedPipe
	}

	n := copy(buf.Data, m.samples)
	m.samples = m.samples[n:]
	if len(m.samples) == 0 {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestDecoder_TruncatedCommChunk(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, uint32(4+8+18))
	buf.WriteString("AIFF")
	buf.WriteString("COMM")
	binary.Write(buf, binary.BigEndian, uint32(18))
	// Channel count, then the stream ends inside the frame count.
	binary.Write(buf, binary.BigEndian, uint16(2))
	buf.Write([]byte{0, 0})

	_, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Fatalf("Decode() error = %v, want ErrNotAiffFile", err)
	}
	if errors.Is(err, ErrUnsupportedAiffLayout) {
		t.Errorf("Decode() error = %v, want the header read failure", err)
	}
	if !strings.Contains(err.Error(), "sample frames") {
		t.Errorf("Decode() error = %q, want the parse failure detail", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte{})); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestReader_Samples(t *testing.T) {
	t.Parallel()

	rd := &reader{dec: &mockAiffReader{samples: []int{1, -1, 300, -300}}}
	src := audio.NewIntStream(audio.Info{Channels: 2, Frames: 2}, 16, rd.read, nil)

	dst := make([]int32, 8)
	n, err := src.ReadInt(dst)
	if err != nil || n != 2 {
		t.Fatalf("ReadInt() = %d, %v", n, err)
	}

	want := []int32{1 << 16, -1 << 16, 300 << 16, -300 << 16}
	if !slices.Equal(dst[:4], want) {
		t.Errorf("ReadInt() = %v, want %v", dst[:4], want)
	}

	if _, err := src.ReadInt(dst); !errors.Is(err, io.EOF) {
		t.Errorf("ReadInt() after end error = %v, want io.EOF", err)
	}
}

func TestReader_Error(t *testing.T) {
	t.Parallel()

	rd := &reader{dec: &mockAiffReader{returnErrors: true}}
	src := audio.NewIntStream(audio.Info{Channels: 1}, 16, rd.read, nil)

	if _, err := src.ReadInt(make([]int32, 4)); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("ReadInt() error = %v, want io.ErrClosedPipe", err)
	}
}
