// SPDX-License-Identifier: EPL-2.0

package speech

// Energy returns the sum of the squared samples of frame.
func Energy(frame []float64) float64 {
	var sum float64
	for _, x := range frame {
		sum += x * x
	}

	return sum
}
