// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale returns the divisor that maps a signed integer sample of the given
// bit depth into [-1, 1). Unknown depths are treated as 16-bit.
func PCMScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 1 << 7
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

// Float64ToInt16 converts a normalized sample to 16-bit PCM. Input outside
// [-1, 1] is clamped and NaN becomes silence.
func Float64ToInt16(x float64) int16 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 1:
		return math.MaxInt16
	case x <= -1:
		return math.MinInt16
	case x < 0:
		return int16(math.Round(x * -math.MinInt16))
	default:
		return int16(math.Round(x * math.MaxInt16))
	}
}
