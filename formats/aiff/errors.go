// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")
	// ErrUnsupportedBitDepth indicates a PCM depth other than 8, 16, 24 or 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")
	// ErrCompressed indicates an AIFF-C file with compressed sample data
	ErrCompressed = errors.New("compressed AIFF-C data is not supported")
	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
	// ErrUnsupportedOutput indicates a representation the writer cannot store
	ErrUnsupportedOutput = errors.New("unsupported AIFF output representation")
	// ErrOutputTooLarge indicates output past the 32 bit FORM size limit
	ErrOutputTooLarge = errors.New("AIFF output exceeds the 4 GiB FORM size limit")
)
