// SPDX-License-Identifier: EPL-2.0

package utils

// ScaleToInt32 widens a signed sample of bitDepth bits to full-scale int32
// by shifting it into the most significant bits.
func ScaleToInt32(v int, bitDepth int) int32 {
	if bitDepth >= 32 {
		return int32(v)
	}

	return int32(v) << (32 - bitDepth)
}

// Int32ToDepth narrows a full-scale int32 sample to bitDepth bits,
// dropping the least significant bits.
func Int32ToDepth(v int32, bitDepth int) int32 {
	if bitDepth >= 32 {
		return v
	}

	return v >> (32 - bitDepth)
}

// IntToFloat normalises a signed sample of bitDepth bits to [-1, 1).
func IntToFloat(v int, bitDepth int) float64 {
	return float64(v) / float64(int64(1)<<(bitDepth-1))
}
