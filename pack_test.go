// SPDX-License-Identifier: EPL-2.0

package audpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ik5/audpack/audio"
	"github.com/ik5/audpack/formats"
	"github.com/ik5/audpack/internal/audiotest"
)

// fixture writes a 16 bit WAV file into dir and returns its path.
func fixture(t testing.TB, dir, name string, rate, channels int, samples ...int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := audiotest.WriteWAV(path, rate, channels, 16, samples); err != nil {
		t.Fatalf("WriteWAV(%s) error = %v", name, err)
	}

	return path
}

// readAll decodes path and returns its info and samples at the given depth.
func readAll(t testing.TB, path string, bitDepth int) (audio.Info, []int) {
	t.Helper()

	src, err := formats.Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer src.Close()

	info := src.Info()
	dst := make([]int32, 64*info.Channels)
	var out []int
	for {
		n, err := src.ReadInt(dst)
		for _, v := range dst[:n*info.Channels] {
			out = append(out, int(v>>(32-bitDepth)))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadInt() error = %v", err)
		}
	}

	return info, out
}

func TestPack_PaddingScenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture(t, dir, "a.wav", 8000, 1, 1, 2, 3, 4)
	b := fixture(t, dir, "b.wav", 8000, 1, 5, 6)
	out := filepath.Join(dir, "out.aiff")

	var progress []int64
	opts := Options{
		BlockFrames: 2,
		Progress:    func(done, total int64) { progress = append(progress, done) },
	}
	if err := Pack([]string{a, b}, out, opts); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	info, got := readAll(t, out, 16)
	if info.Channels != 2 || info.Frames != 4 || info.SampleRate != 8000 {
		t.Errorf("output info = %+v", info)
	}
	if want := []int{1, 5, 2, 6, 3, 0, 4, 0}; !slices.Equal(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
	if want := []int64{0, 2, 4}; !slices.Equal(progress, want) {
		t.Errorf("progress = %v, want %v", progress, want)
	}
}

func TestPack_ChannelOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stereo := fixture(t, dir, "stereo.wav", 44100, 2, 10, 11, 20, 21, 30, 31)
	mono := fixture(t, dir, "mono.wav", 44100, 1, 12, 22, 32)
	out := filepath.Join(dir, "out.wav")

	if err := Pack([]string{stereo, mono}, out, Options{Container: audio.WAV}); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	info, got := readAll(t, out, 16)
	if info.Channels != 3 {
		t.Errorf("channels = %d, want 3", info.Channels)
	}
	if want := []int{10, 11, 12, 20, 21, 22, 30, 31, 32}; !slices.Equal(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestPack_BlockSizeInvariance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	long := make([]int, 37)
	for i := range long {
		long[i] = i*100 - 1800
	}
	a := fixture(t, dir, "a.wav", 16000, 1, long...)
	b := fixture(t, dir, "b.wav", 16000, 2, 7, -7, 8, -8, 9, -9)

	var first []byte
	for _, block := range []int{1, 2, 5, 36, 37, 38, 2048} {
		out := filepath.Join(dir, fmt.Sprintf("out-%d.aiff", block))
		if err := Pack([]string{a, b}, out, Options{Representation: audio.Int24, BlockFrames: block}); err != nil {
			t.Fatalf("Pack(block %d) error = %v", block, err)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = data
			continue
		}
		if !bytes.Equal(first, data) {
			t.Errorf("output with block %d differs from block 1", block)
		}
	}
}

func TestPack_Determinism(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture(t, dir, "a.wav", 8000, 1, 100, -200, 300)
	b := fixture(t, dir, "b.wav", 8000, 1, 4)

	var outputs [][]byte
	for i := range 2 {
		out := filepath.Join(dir, fmt.Sprintf("out-%d.wav", i))
		if err := Pack([]string{a, b}, out, Options{Container: audio.WAV, Representation: audio.Float32}); err != nil {
			t.Fatalf("Pack() error = %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}

	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("identical runs produced different output")
	}
}

func TestPack_ConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a8k := fixture(t, dir, "a8k.wav", 8000, 1, 1, 2)
	b16k := fixture(t, dir, "b16k.wav", 16000, 1, 1, 2)

	tests := []struct {
		name   string
		inputs []string
		opts   Options
		want   error
	}{
		{"no inputs", nil, Options{}, audio.ErrTooFewFiles},
		{"rate mismatch", []string{a8k, b16k}, Options{}, audio.ErrSampleRateMismatch},
		{"wav int8", []string{a8k}, Options{Container: audio.WAV, Representation: audio.Int8}, audio.ErrIllegalFormat},
		{"unknown representation", []string{a8k}, Options{Representation: audio.Representation(42)}, audio.ErrIllegalFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "out.aiff")
			err := Pack(tt.inputs, out, tt.opts)

			var cfg *audio.ConfigError
			if !errors.As(err, &cfg) {
				t.Fatalf("Pack() error = %v, want *audio.ConfigError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Pack() error = %v, want %v", err, tt.want)
			}
			if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
				t.Errorf("output exists after config error: %v", statErr)
			}
		})
	}
}

func TestPack_ChannelCeiling(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// 128 stereo files make exactly MaxChannels channels.
	inputs := make([]string, 0, 129)
	for i := range 128 {
		inputs = append(inputs, fixture(t, dir, fmt.Sprintf("s%03d.wav", i), 8000, 2, i, -i))
	}

	out := filepath.Join(dir, "max.aiff")
	if err := Pack(inputs, out, Options{}); err != nil {
		t.Fatalf("Pack(%d channels) error = %v", audio.MaxChannels, err)
	}
	if info, _ := readAll(t, out, 16); info.Channels != audio.MaxChannels {
		t.Errorf("channels = %d, want %d", info.Channels, audio.MaxChannels)
	}

	inputs = append(inputs, fixture(t, dir, "extra.wav", 8000, 1, 1))
	over := filepath.Join(dir, "over.aiff")
	err := Pack(inputs, over, Options{})
	if !errors.Is(err, audio.ErrTooManyChannels) {
		t.Errorf("Pack(257 channels) error = %v, want ErrTooManyChannels", err)
	}
	if _, statErr := os.Stat(over); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("output exists after channel ceiling error: %v", statErr)
	}
}

func TestPack_IOErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture(t, dir, "a.wav", 8000, 1, 1)
	missing := filepath.Join(dir, "missing.wav")

	err := Pack([]string{a, missing}, filepath.Join(dir, "out.aiff"), Options{})
	var ioErr *audio.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Pack() error = %v, want *audio.IOError", err)
	}
	if ioErr.Op != "open" || ioErr.Path != missing {
		t.Errorf("IOError = %+v, want open of %s", ioErr, missing)
	}

	err = Pack([]string{a}, filepath.Join(dir, "no", "such", "dir.aiff"), Options{})
	if !errors.As(err, &ioErr) || ioErr.Op != "create" {
		t.Errorf("Pack() error = %v, want create IOError", err)
	}
}

var (
	errReadInput  = errors.New("read failed")
	errCloseInput = errors.New("close failed")
)

// trackedSource counts Close calls and can fail reads or Close.
type trackedSource struct {
	audio.Source
	closed   int
	readErr  error
	closeErr error
}

func (s *trackedSource) ReadInt(dst []int32) (int, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	return s.Source.ReadInt(dst)
}

func (s *trackedSource) ReadFloat(dst []float64) (int, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	return s.Source.ReadFloat(dst)
}

func (s *trackedSource) Close() error {
	s.closed++
	return errors.Join(s.Source.Close(), s.closeErr)
}

// trackingDecoder decodes WAV and keeps every source it returns, in order.
// readErrs and closeErrs are handed to the source of the same index.
type trackingDecoder struct {
	sources   []*trackedSource
	readErrs  map[int]error
	closeErrs map[int]error
}

func (d *trackingDecoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	wav, _ := formats.Default.Get(formats.WAV)
	src, err := wav.Decode(r)
	if err != nil {
		return nil, err
	}

	i := len(d.sources)
	ts := &trackedSource{Source: src, readErr: d.readErrs[i], closeErr: d.closeErrs[i]}
	d.sources = append(d.sources, ts)

	return ts, nil
}

func (d *trackingDecoder) registry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(formats.WAV, d)
	return reg
}

func TestPack_ClosesEveryInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture(t, dir, "a.wav", 8000, 1, 1, 2, 3)
	b := fixture(t, dir, "b.wav", 8000, 1, 4, 5, 6)
	c := fixture(t, dir, "c.wav", 8000, 1, 7, 8, 9)
	missing := filepath.Join(dir, "missing.wav")

	tests := []struct {
		name    string
		inputs  []string
		dec     *trackingDecoder
		op      string
		opened  int
		wantErr error
	}{
		{"success", []string{a, b, c}, &trackingDecoder{}, "", 3, nil},
		{"open fails mid loop", []string{a, b, missing}, &trackingDecoder{}, "open", 2, nil},
		{"read fails mid stream", []string{a, b, c}, &trackingDecoder{readErrs: map[int]error{1: errReadInput}}, "read", 3, errReadInput},
		{"rate mismatch", []string{a, fixture(t, dir, "d.wav", 11025, 1, 1)}, &trackingDecoder{}, "", 2, audio.ErrSampleRateMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.aiff")
			err := Pack(tt.inputs, out, Options{Registry: tt.dec.registry(), BlockFrames: 2})

			if tt.op != "" {
				var ioErr *audio.IOError
				if !errors.As(err, &ioErr) || ioErr.Op != tt.op {
					t.Errorf("Pack() error = %v, want %s IOError", err, tt.op)
				}
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Pack() error = %v, want %v", err, tt.wantErr)
			}
			if tt.op == "" && tt.wantErr == nil && err != nil {
				t.Errorf("Pack() error = %v", err)
			}

			if len(tt.dec.sources) != tt.opened {
				t.Fatalf("opened %d inputs, want %d", len(tt.dec.sources), tt.opened)
			}
			for i, src := range tt.dec.sources {
				if src.closed != 1 {
					t.Errorf("input %d closed %d times, want 1", i, src.closed)
				}
			}
		})
	}
}

func TestPack_CloseErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture(t, dir, "a.wav", 8000, 1, 1, 2)
	b := fixture(t, dir, "b.wav", 8000, 1, 3, 4)

	t.Run("after success", func(t *testing.T) {
		t.Parallel()

		dec := &trackingDecoder{closeErrs: map[int]error{1: errCloseInput}}
		err := Pack([]string{a, b}, filepath.Join(t.TempDir(), "out.aiff"), Options{Registry: dec.registry()})

		var ioErr *audio.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("Pack() error = %v, want *audio.IOError", err)
		}
		if ioErr.Op != "close" || ioErr.Path != b {
			t.Errorf("IOError = %+v, want close of %s", ioErr, b)
		}
		if !errors.Is(err, errCloseInput) {
			t.Errorf("Pack() error = %v, want it to wrap the close failure", err)
		}
	})

	t.Run("joined with read failure", func(t *testing.T) {
		t.Parallel()

		dec := &trackingDecoder{
			readErrs:  map[int]error{0: errReadInput},
			closeErrs: map[int]error{0: errCloseInput, 1: errCloseInput},
		}
		err := Pack([]string{a, b}, filepath.Join(t.TempDir(), "out.aiff"), Options{Registry: dec.registry()})

		if !errors.Is(err, errReadInput) || !errors.Is(err, errCloseInput) {
			t.Fatalf("Pack() error = %v, want both read and close failures", err)
		}

		var ops []string
		var walk func(error)
		walk = func(e error) {
			if j, ok := e.(interface{ Unwrap() []error }); ok {
				for _, e := range j.Unwrap() {
					walk(e)
				}
				return
			}
			var ioErr *audio.IOError
			if errors.As(e, &ioErr) {
				ops = append(ops, ioErr.Op+" "+filepath.Base(ioErr.Path))
			}
		}
		walk(err)

		slices.Sort(ops)
		if want := []string{"close a.wav", "close b.wav", "read a.wav"}; !slices.Equal(ops, want) {
			t.Errorf("joined errors = %v, want %v", ops, want)
		}
	})
}

func TestPack_Verbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture(t, dir, "a.wav", 8000, 2, 1, 2, 3, 4)
	out := filepath.Join(dir, "out.aiff")

	var verbose, logs bytes.Buffer
	opts := Options{
		Representation: audio.Float64,
		Verbose:        &verbose,
		Logger:         slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	if err := Pack([]string{a}, out, opts); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	for _, want := range []string{
		"audpack version " + Version,
		"INPUT:\n" + a + "\n",
		"format: WAV (Microsoft)",
		"sample rate: 8000",
		"length: 0.000250 seconds (2 samples)",
		"OUTPUT:\n" + out + "\n",
		"format: AIFF (Apple/SGI)",
		"sample data: 64 bit float data",
	} {
		if !strings.Contains(verbose.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, verbose.String())
		}
	}

	for _, want := range []string{"opened input", "created output", "packing", "truncated output"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		block, want int
	}{
		{0, audio.DefaultBlockFrames},
		{-5, 1},
		{1, 1},
		{4096, 4096},
	}

	for _, tt := range tests {
		o := Options{BlockFrames: tt.block}.withDefaults()
		if o.BlockFrames != tt.want {
			t.Errorf("BlockFrames %d -> %d, want %d", tt.block, o.BlockFrames, tt.want)
		}
		if o.Representation != audio.Int16 || o.Container != audio.AIFF {
			t.Errorf("default format = %v/%v", o.Container, o.Representation)
		}
		if o.Logger == nil || o.Registry == nil {
			t.Error("Logger and Registry must default to non-nil")
		}
	}
}

func BenchmarkPack(b *testing.B) {
	dir := b.TempDir()
	samples := make([]int, 2*48000)
	for i := range samples {
		samples[i] = i % 30000
	}
	a := fixture(b, dir, "a.wav", 48000, 2, samples...)
	c := fixture(b, dir, "c.wav", 48000, 1, samples[:48000]...)
	out := filepath.Join(dir, "out.aiff")

	b.ReportAllocs()
	for b.Loop() {
		if err := Pack([]string{a, c}, out, Options{Representation: audio.Int24}); err != nil {
			b.Fatal(err)
		}
	}
}
