// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/go-audio/riff"
)

// maxFmtSize bounds the fmt chunk read into memory.
const maxFmtSize = 1 << 12

// guidSuffix is the tail shared by the KSDATAFORMAT_SUBTYPE GUIDs. The first
// two bytes of such a GUID hold the plain format tag.
var guidSuffix = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

var errBadFmtChunk = errors.New("malformed fmt chunk")

// sampleFormat walks the RIFF chunks up to fmt and returns the format tag
// describing the samples. For WAVE_FORMAT_EXTENSIBLE that is the tag held in
// the SubFormat GUID, or 0 when the GUID is missing or not a standard one.
// r is left at the offset it started from.
func sampleFormat(r io.ReadSeeker) (code uint16, err error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer func() {
		if _, serr := r.Seek(start, io.SeekStart); err == nil && serr != nil {
			err = serr
		}
	}()

	p := riff.New(r)
	if perr := p.ParseHeaders(); perr != nil {
		return 0, perr
	}
	if p.Format != riff.WavFormatID {
		return 0, riff.ErrFmtNotSupported
	}

	for {
		ch, cerr := p.NextChunk()
		if cerr != nil {
			return 0, cerr
		}
		if ch.ID != riff.FmtID {
			ch.Done()
			continue
		}

		if ch.Size < 16 || ch.Size > maxFmtSize {
			return 0, errBadFmtChunk
		}
		body := make([]byte, ch.Size)
		if _, rerr := io.ReadFull(ch, body); rerr != nil {
			return 0, rerr
		}

		tag := binary.LittleEndian.Uint16(body)
		if tag != formatExtensible {
			return tag, nil
		}
		// cbSize, valid bits and channel mask precede the GUID at offset 24.
		if len(body) < 40 || !bytes.Equal(body[26:40], guidSuffix) {
			return 0, nil
		}

		return binary.LittleEndian.Uint16(body[24:]), nil
	}
}
