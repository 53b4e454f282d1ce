// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestPCMScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		want     float64
	}{
		{8, 128},
		{16, 32768},
		{24, 8388608},
		{32, 2147483648},
		{0, 32768},
		{12, 32768},
	}

	for _, tt := range tests {
		if got := PCMScale(tt.bitDepth); got != tt.want {
			t.Errorf("PCMScale(%d) = %v, want %v", tt.bitDepth, got, tt.want)
		}
	}
}

func TestFloat64ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{"zero", 0, 0},
		{"full scale positive", 1, math.MaxInt16},
		{"full scale negative", -1, math.MinInt16},
		{"half positive", 0.5, 16384},
		{"half negative", -0.5, -16384},
		{"small positive", 0.001, 33},
		{"clamp over", 1.5, math.MaxInt16},
		{"clamp under", -7, math.MinInt16},
		{"positive infinity", math.Inf(1), math.MaxInt16},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float64ToInt16(tt.input); got != tt.want {
				t.Errorf("Float64ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat64ToInt16_RoundTrip(t *testing.T) {
	t.Parallel()

	scale := PCMScale(16)
	for v := math.MinInt16; v <= math.MaxInt16; v += 97 {
		got := int(Float64ToInt16(float64(v) / scale))

		// Positive samples scale by MaxInt16 rather than 2^15, so they may
		// land one step low.
		if d := v - got; d < 0 || d > 1 || (v < 0 && d != 0) {
			t.Fatalf("round trip of %d gave %d", v, got)
		}
	}
}
