// SPDX-License-Identifier: EPL-2.0

package speech

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Estimator selects how AutocorrelationWith computes its result.
type Estimator string

const (
	// EstimatorDirect sums the lagged products directly, O(N^2).
	EstimatorDirect Estimator = "direct"
	// EstimatorFFT goes through the power spectrum, O(N log N).
	EstimatorFFT Estimator = "fft"
	// EstimatorAuto picks direct below AutoFFTThreshold samples and FFT from there on.
	EstimatorAuto Estimator = "auto"
)

// AutoFFTThreshold is the frame length from which EstimatorAuto switches to the FFT.
const AutoFFTThreshold = 64

// ParseEstimator validates s as an Estimator. An empty string means EstimatorAuto.
func ParseEstimator(s string) (Estimator, error) {
	switch e := Estimator(s); e {
	case "":
		return EstimatorAuto, nil
	case EstimatorDirect, EstimatorFFT, EstimatorAuto:
		return e, nil
	default:
		return "", fmt.Errorf("autocorrelation estimator %q: %w", s, ErrInvalidArgument)
	}
}

// Autocorrelation returns r[k] = sum(frame[i]*frame[i+k]) for k in [0, len(frame)).
// The estimate is biased: no term is divided by N-k. r[0] is the frame energy.
func Autocorrelation(frame []float64) []float64 {
	n := len(frame)
	r := make([]float64, n)

	for lag := range n {
		var sum float64
		for i := 0; i < n-lag; i++ {
			sum += frame[i] * frame[i+lag]
		}
		r[lag] = sum
	}

	return r
}

// AutocorrelationFFT returns the same coefficients as Autocorrelation, up to
// floating-point error, computed as the inverse transform of the power spectrum
// of the zero-padded frame.
func AutocorrelationFFT(frame []float64) []float64 {
	n := len(frame)
	if n < 2 {
		return Autocorrelation(frame)
	}

	// Padding to at least 2N-1 keeps the circular correlation from wrapping.
	size := 1 << bits.Len(uint(2*n-2))

	padded := make([]float64, size)
	copy(padded, frame)

	fft := fourier.NewFFT(size)
	coeffs := fft.Coefficients(nil, padded)
	for i, c := range coeffs {
		re, im := real(c), imag(c)
		coeffs[i] = complex(re*re+im*im, 0)
	}

	// The inverse transform is unnormalized.
	seq := fft.Sequence(padded, coeffs)
	scale := 1 / float64(size)

	r := make([]float64, n)
	for i := range r {
		r[i] = seq[i] * scale
	}

	return r
}

// AutocorrelationWith computes the autocorrelation of frame with estimator e.
func AutocorrelationWith(frame []float64, e Estimator) ([]float64, error) {
	switch e {
	case EstimatorDirect:
		return Autocorrelation(frame), nil
	case EstimatorFFT:
		return AutocorrelationFFT(frame), nil
	case EstimatorAuto, "":
		if len(frame) >= AutoFFTThreshold {
			return AutocorrelationFFT(frame), nil
		}
		return Autocorrelation(frame), nil
	default:
		return nil, fmt.Errorf("autocorrelation estimator %q: %w", e, ErrInvalidArgument)
	}
}
