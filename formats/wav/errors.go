// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavFormat = errors.New("only integer PCM WAV input is supported")
	ErrUnsupportedBitDepth  = errors.New("unsupported WAV bit depth")
	ErrUnsupportedOutput    = errors.New("unsupported WAV output representation")
	ErrInvalidChannels      = errors.New("WAV channel count must be positive")
	ErrOutputTooLarge       = errors.New("WAV output exceeds the 4 GiB RIFF size limit")
)
