// SPDX-License-Identifier: EPL-2.0

package speech

import (
	"fmt"
	"math"
)

// CenterClip clamps every sample of frame into [-threshold, threshold] and
// returns the result as a new slice. A negative or NaN threshold is rejected
// rather than reinterpreted.
func CenterClip(frame []float64, threshold float64) ([]float64, error) {
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("clipping threshold %v must be non-negative: %w", threshold, ErrInvalidArgument)
	}

	out := make([]float64, len(frame))
	for i, x := range frame {
		out[i] = max(min(x, threshold), -threshold)
	}

	return out, nil
}
