// SPDX-License-Identifier: EPL-2.0

package speech

import "fmt"

// FrameCount returns how many full frames fit in a signal of signalLength samples.
func FrameCount(signalLength, frameLength, hopLength int) (int, error) {
	if err := checkFraming(frameLength, hopLength); err != nil {
		return 0, err
	}

	if signalLength < frameLength {
		return 0, nil
	}

	return (signalLength-frameLength)/hopLength + 1, nil
}

// FrameOffset returns the index of the first sample of frame index.
func FrameOffset(index, hopLength int) int {
	return index * hopLength
}

// FrameSignal splits signal into frames of frameLength samples starting every
// hopLength samples. Each frame is a copy. Samples after the last full frame are
// dropped, so a signal shorter than frameLength yields no frames.
func FrameSignal(signal []float64, frameLength, hopLength int) ([][]float64, error) {
	count, err := FrameCount(len(signal), frameLength, hopLength)
	if err != nil {
		return nil, err
	}

	// One backing array for all frames keeps this to two allocations.
	backing := make([]float64, count*frameLength)
	frames := make([][]float64, count)

	for i := range count {
		start := FrameOffset(i, hopLength)
		frame := backing[i*frameLength : (i+1)*frameLength : (i+1)*frameLength]
		copy(frame, signal[start:start+frameLength])
		frames[i] = frame
	}

	return frames, nil
}

// FrameViews is FrameSignal without the copies. Every view shares memory with
// signal, so signal must not be modified while the views are in use. The
// capacity of each view ends at the frame boundary, so appending to a view
// reallocates instead of overwriting the next samples of signal.
func FrameViews(signal []float64, frameLength, hopLength int) ([][]float64, error) {
	count, err := FrameCount(len(signal), frameLength, hopLength)
	if err != nil {
		return nil, err
	}

	views := make([][]float64, count)
	for i := range count {
		start := FrameOffset(i, hopLength)
		views[i] = signal[start : start+frameLength : start+frameLength]
	}

	return views, nil
}

func checkFraming(frameLength, hopLength int) error {
	if frameLength <= 0 {
		return fmt.Errorf("frame length %d must be positive: %w", frameLength, ErrInvalidArgument)
	}

	if hopLength <= 0 {
		return fmt.Errorf("hop length %d must be positive: %w", hopLength, ErrInvalidArgument)
	}

	return nil
}
