// SPDX-License-Identifier: EPL-2.0

package speech

// ZeroCrossings counts the adjacent sample pairs of frame whose product is
// negative. A sample that is exactly zero never produces a crossing.
func ZeroCrossings(frame []float64) int {
	crossings := 0
	for i := 1; i < len(frame); i++ {
		// Compare signs instead of multiplying: the product of two tiny
		// samples can underflow to zero.
		prev, cur := frame[i-1], frame[i]
		if (prev < 0 && cur > 0) || (prev > 0 && cur < 0) {
			crossings++
		}
	}

	return crossings
}
