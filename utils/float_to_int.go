// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt32 converts a normalised sample to a full-scale int32 sample.
// Values outside [-1, 1] are clamped.
func FloatToInt32(x float64) int32 {
	if x >= 1 {
		return 0x7FFFFFFF
	} else if x <= -1 {
		return -0x80000000
	}

	return int32(x * 2147483648.0)
}

