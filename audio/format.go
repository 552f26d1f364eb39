// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MaxChannels is the largest number of channels an output may carry.
const MaxChannels = 256

// Representation is the sample type of the output stream. Every input is
// converted to it while being read.
type Representation int

const (
	Int8 Representation = iota + 1
	Int16
	Int24
	Int32
	Float32
	Float64
)

// IntRepresentation returns the integer representation of the given number
// of bytes per sample, clamped into 1..4.
func IntRepresentation(bytes int) Representation {
	return Int8 + Representation(min(max(bytes, 1), 4)-1)
}

func (r Representation) valid() bool {
	return r >= Int8 && r <= Float64
}

// IsFloat reports whether r is a floating point representation.
func (r Representation) IsFloat() bool {
	return r == Float32 || r == Float64
}

// BitDepth is the number of bits a sample occupies in the container.
func (r Representation) BitDepth() int {
	switch r {
	case Int8:
		return 8
	case Int16:
		return 16
	case Int24:
		return 24
	case Int32, Float32:
		return 32
	case Float64:
		return 64
	}

	return 0
}

// Width is the number of bytes a sample occupies in a block buffer.
// Integer samples of every depth travel as full-scale int32.
func (r Representation) Width() int {
	if r == Float64 {
		return 8
	}

	return 4
}

func (r Representation) String() string {
	switch r {
	case Int8, Int16, Int24, Int32:
		return fmt.Sprintf("%d bit PCM", r.BitDepth())
	case Float32:
		return "32 bit float"
	case Float64:
		return "64 bit float"
	}

	return fmt.Sprintf("Representation(%d)", int(r))
}

// Container is the file structure wrapping the output samples.
type Container int

const (
	AIFF Container = iota
	WAV
)

func (c Container) String() string {
	switch c {
	case AIFF:
		return "AIFF (Apple/SGI)"
	case WAV:
		return "WAV (Microsoft)"
	}

	return fmt.Sprintf("Container(%d)", int(c))
}

// OutputFormat is a validated container and sample representation pair.
type OutputFormat struct {
	Container      Container
	Representation Representation
}

// DefaultFormat is 16 bit PCM AIFF.
var DefaultFormat = OutputFormat{Container: AIFF, Representation: Int16}

// Encoding is the encoding tag the container stores samples with.
func (f OutputFormat) Encoding() Encoding {
	switch f.Representation {
	case Float32:
		return EncodingFloat
	case Float64:
		return EncodingDouble
	}

	return PCMEncoding(f.Representation.BitDepth())
}

func (f OutputFormat) String() string {
	return fmt.Sprintf("%s, %s", f.Container, f.Representation)
}

// legalFormats lists the representations each container can hold.
// 8 bit WAV data is unsigned, so a signed 8 bit request is refused.
var legalFormats = map[Container]map[Representation]bool{
	AIFF: {Int8: true, Int16: true, Int24: true, Int32: true, Float32: true, Float64: true},
	WAV:  {Int16: true, Int24: true, Int32: true, Float32: true, Float64: true},
}

// Negotiate validates the requested container and representation.
func Negotiate(c Container, r Representation) (OutputFormat, error) {
	if !r.valid() || !legalFormats[c][r] {
		return OutputFormat{}, configErr(fmt.Errorf("%w: %s with %s", ErrIllegalFormat, c, r))
	}

	return OutputFormat{Container: c, Representation: r}, nil
}
