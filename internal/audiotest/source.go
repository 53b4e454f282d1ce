// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources and signals for tests.
// Sources satisfy audio.Source without importing it.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by sources built with FailAfter.
var ErrInjected = errors.New("audiotest: injected read failure")

// Generator returns the value of channel ch at frame index i.
type Generator func(i, ch int) float32

// Source generates a fixed number of frames from a Generator.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	gen        Generator

	failAt int
	closed bool
}

// NewSource returns a source of frames frames at sampleRate with the given
// channel count.
func NewSource(sampleRate, channels, frames int, gen Generator) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		gen:        gen,
		failAt:     -1,
	}
}

// Silence is a source of zeros.
func Silence(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// Constant repeats value on every channel.
func Constant(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// Sine is a full-scale sine of freq Hz, identical on every channel.
func Sine(sampleRate, channels, frames int, freq float64) *Source {
	return NewSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	})
}

// FailAfter makes ReadSamples return ErrInjected once frames frames were read.
func (s *Source) FailAfter(frames int) *Source {
	s.failAt = frames
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

// Reset rewinds the source so it can be read again.
func (s *Source) Reset() {
	s.pos = 0
	s.closed = false
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.failAt >= 0 && s.pos >= s.failAt {
		return 0, ErrInjected
	}

	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.failAt >= 0 {
		n = min(n, s.failAt-s.pos)
	}

	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.gen(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

// SineSignal returns n samples of a unit sine at freq Hz sampled at sampleRate.
func SineSignal(n int, freq, sampleRate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	return out
}
