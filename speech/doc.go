// SPDX-License-Identifier: EPL-2.0

// Package speech provides short-time analysis primitives for speech signals.
//
// A signal is a []float64 of normalized samples (integer PCM is converted by the
// decoders in the formats packages before it gets here). The signal is cut into
// fixed-length, possibly overlapping frames and every frame is analysed on its own.
//
// # Framing
//
//	frames, err := speech.FrameSignal(samples, 25, 10)
//
// Frames start every hop samples. A trailing remainder shorter than the frame
// length is dropped. FrameViews returns the same frames as read-only views into
// the signal instead of copies.
//
// # Windowing and clipping
//
//	windowed, err := speech.ApplyWindow(frame, speech.Hamming)
//	clipped, err := speech.CenterClip(windowed, 0.2)
//
// Window types live in a registry. Hamming, Hann, Blackman, Bartlett,
// Rectangular, Sine, BlackmanHarris and Nuttall are registered by default and
// RegisterWindow adds more. Apart from Hamming the built-ins come from gonum's
// dsp/window. An unknown window type is always an error
// (ErrUnsupportedWindowType), never a silent fallback.
//
// # Features
//
//   - Energy: sum of squared samples
//   - ZeroCrossings: number of strict sign changes between adjacent samples
//   - Autocorrelation: unnormalized r[k] for every lag k of the frame
//   - AMDF: minimum summed magnitude difference between two frames over all lags
//
// Autocorrelation is O(N^2). AutocorrelationFFT gives the same values through an
// FFT and is the better choice for long frames.
//
// # Errors
//
// Invalid lengths, mismatched frames and negative thresholds return errors that
// wrap ErrInvalidArgument:
//
//	if errors.Is(err, speech.ErrInvalidArgument) {
//	    // fix the arguments
//	}
//
// Every function is pure and safe for concurrent use.
package speech
