// SPDX-License-Identifier: EPL-2.0

package speech

import (
	"fmt"
	"math"
)

// AMDFCurve returns, for every lag k in [0, len(frame2)), the summed magnitude
// difference sum(|frame1[i] - frame2[i+k]|) over the indices with
// i+k < len(frame2). Both frames must be non-empty and of equal length.
func AMDFCurve(frame1, frame2 []float64) ([]float64, error) {
	if err := checkAMDF(frame1, frame2); err != nil {
		return nil, err
	}

	n := len(frame2)
	curve := make([]float64, n)

	for lag := range n {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += math.Abs(frame1[i] - frame2[i+lag])
		}
		curve[lag] = sum
	}

	return curve, nil
}

// AMDFLag returns the lag with the smallest AMDFCurve value together with that
// value. Ties go to the smallest lag.
func AMDFLag(frame1, frame2 []float64) (int, float64, error) {
	curve, err := AMDFCurve(frame1, frame2)
	if err != nil {
		return 0, 0, err
	}

	best := 0
	for lag := 1; lag < len(curve); lag++ {
		if curve[lag] < curve[best] {
			best = lag
		}
	}

	return best, curve[best], nil
}

// AMDF returns the minimum of AMDFCurve over all lags.
func AMDF(frame1, frame2 []float64) (float64, error) {
	_, value, err := AMDFLag(frame1, frame2)
	return value, err
}

func checkAMDF(frame1, frame2 []float64) error {
	if len(frame1) == 0 || len(frame2) == 0 {
		return fmt.Errorf("amdf of empty frame (lengths %d and %d): %w",
			len(frame1), len(frame2), ErrInvalidArgument)
	}

	if len(frame1) != len(frame2) {
		return fmt.Errorf("amdf frame lengths differ (%d and %d): %w",
			len(frame1), len(frame2), ErrInvalidArgument)
	}

	return nil
}
