// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("flac: unsupported bit depth")
	ErrChannelMismatch     = errors.New("flac: frame channel count differs from stream info")
)
