// SPDX-License-Identifier: EPL-2.0

package audio

// Encoding tags how samples are stored in a stream.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingPCMS8
	EncodingPCMU8
	EncodingPCM16
	EncodingPCM24
	EncodingPCM32
	EncodingFloat
	EncodingDouble
	EncodingMP3
	EncodingVorbis
	EncodingFLAC
)

var encodingNames = map[Encoding]string{
	EncodingPCMS8:  "Signed 8 bit data",
	EncodingPCMU8:  "Unsigned 8 bit data",
	EncodingPCM16:  "Signed 16 bit data",
	EncodingPCM24:  "Signed 24 bit data",
	EncodingPCM32:  "Signed 32 bit data",
	EncodingFloat:  "32 bit float data",
	EncodingDouble: "64 bit float data",
	EncodingMP3:    "MPEG Layer 3",
	EncodingVorbis: "Vorbis",
	EncodingFLAC:   "FLAC",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}

	return "unknown"
}

// PCMEncoding returns the signed integer encoding of the given bit depth.
func PCMEncoding(bitDepth int) Encoding {
	switch bitDepth {
	case 8:
		return EncodingPCMS8
	case 16:
		return EncodingPCM16
	case 24:
		return EncodingPCM24
	case 32:
		return EncodingPCM32
	}

	return EncodingUnknown
}
