// SPDX-License-Identifier: EPL-2.0

package utils

func Float64ToInt16(x float64) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat64 maps a 16-bit sample into [-1, 1).
func Int16ToFloat64(s int16) float64 {
	return float64(s) / 32768.0
}
