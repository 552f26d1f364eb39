// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// DefaultBlockFrames is the number of frames processed per block when the
// caller does not choose one.
const DefaultBlockFrames = 2048

// Input is an opened input stream and the path it was opened from.
type Input struct {
	Path   string
	Source Source
}

// Output is an opened output stream and the path it was created at.
type Output struct {
	Path string
	Sink Sink
}

// Interleaver packs its inputs frame by frame into one output stream,
// block by block. Inputs shorter than the longest one are padded with
// silence.
type Interleaver struct {
	inputs      []*stream
	out         Output
	codec       codec
	blockFrames int
	total       int64

	block []byte

	// Progress, when set, is called before every block with the number of
	// frames written so far, and once more with total when done.
	Progress func(done, total int64)
}

// NewInterleaver prepares the block buffers for packing inputs into out
// with samples of representation r. total is the frame count of the
// finished output, normally ChannelPlan.Frames.
func NewInterleaver(inputs []Input, out Output, r Representation, blockFrames int, total int64) (*Interleaver, error) {
	if len(inputs) == 0 {
		return nil, configErr(ErrTooFewFiles)
	}
	if blockFrames < 1 {
		return nil, configErr(ErrInvalidBlockSize)
	}

	il := &Interleaver{
		inputs:      make([]*stream, len(inputs)),
		out:         out,
		codec:       codecFor(r),
		blockFrames: blockFrames,
		total:       total,
	}

	frameSize := 0
	for i, in := range inputs {
		il.inputs[i] = newStream(in, il.codec.width, blockFrames)
		frameSize += il.inputs[i].frameSize
	}
	il.block = make([]byte, frameSize*blockFrames)

	return il, nil
}

// Run writes every block and then truncates the output to the exact
// frame count. It stops at the first read or write error.
func (il *Interleaver) Run() error {
	step := int64(il.blockFrames)

	for done := int64(0); done < il.total; done += step {
		il.report(done)

		for _, in := range il.inputs {
			if err := il.fill(in); err != nil {
				return err
			}
		}

		il.interleave()

		if err := il.out.Sink.WriteBlock(il.block, il.blockFrames); err != nil {
			return &IOError{Op: "write", Path: il.out.Path, Err: err}
		}
	}

	il.report(il.total)

	return il.finalize()
}

func (il *Interleaver) report(done int64) {
	if il.Progress != nil {
		il.Progress(done, il.total)
	}
}

// fill reads the next block of in, zero padding whatever the stream could
// not supply.
func (il *Interleaver) fill(in *stream) error {
	got := 0

	for got < il.blockFrames && !in.eof {
		want := il.blockFrames - got
		n, err := il.codec.read(in, got, want)
		got += min(n, want)

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			in.eof = true
		} else if err != nil {
			return &IOError{Op: "read", Path: in.path, Err: err}
		}
	}

	clear(in.block[got*in.frameSize:])
	in.cursor = 0

	return nil
}

// interleave copies one frame of every input, in input order, for every
// frame position of the block.
func (il *Interleaver) interleave() {
	dst := 0

	for range il.blockFrames {
		for _, in := range il.inputs {
			copy(il.block[dst:dst+in.frameSize], in.block[in.cursor:in.cursor+in.frameSize])
			in.cursor += in.frameSize
			dst += in.frameSize
		}
	}
}

// finalize drops the frames the last block wrote past the longest input.
func (il *Interleaver) finalize() error {
	if err := il.out.Sink.Truncate(il.total); err != nil {
		return &IOError{Op: "truncate", Path: il.out.Path, Err: err}
	}

	return nil
}
