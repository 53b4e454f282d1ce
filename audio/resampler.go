// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/speechframe/utils"
)

// maxEmptyReads bounds how often a source may return no samples and no error
// before the resampler gives up on it.
const maxEmptyReads = 100

// Resampler converts a Source to another sample rate with Catmull-Rom
// interpolation. Channel count is preserved. When downsampling, every source
// frame first passes a one-pole low-pass filter with its cutoff at the
// Nyquist frequency of the destination rate.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// taps[1] and taps[2] bracket the output position; taps[0] and taps[3]
	// shape the curve. live marks taps that hold real source frames.
	taps [4][]float32
	live [4]bool
	pos  float64

	primed bool
	srcEOF bool
	frame  []float32

	smooth  bool
	alpha   float32
	lp      []float32
	lpReady bool
}

// NewResampler returns a Resampler reading from src and producing dstRate Hz.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("resample %d Hz to %d Hz: %w", src.SampleRate(), dstRate, ErrInvalidSampleRate)
	}

	channels := src.Channels()
	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
		lp:       make([]float32, channels),
	}

	if r.step > 1 {
		r.smooth = true
		cutoff := float64(dstRate) / 2
		r.alpha = float32(1 - math.Exp(-2*math.Pi*cutoff/float64(src.SampleRate())))
	}

	for i := range r.taps {
		r.taps[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}

	return nil
}

// ReadSamples fills dst with samples at the destination rate. len(dst) must
// be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
		r.primed = true
	}

	frames := len(dst) / r.channels
	for w := range frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return w * r.channels, err
			}
		}

		if !r.live[2] {
			return w * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[w*r.channels : (w+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.taps[0][c], r.taps[1][c], r.taps[2][c], r.taps[3][c], x)
		}

		r.pos += r.step
	}

	return len(dst), nil
}

// prime loads the first three source frames into taps[1:] and mirrors the
// first one into taps[0].
func (r *Resampler) prime() error {
	for i := 1; i < len(r.taps); i++ {
		ok, err := r.readFrame(r.taps[i])
		if err != nil {
			return err
		}

		r.live[i] = ok
		if !ok {
			copy(r.taps[i], r.taps[i-1])
		}
	}

	if !r.live[1] {
		return io.EOF
	}

	copy(r.taps[0], r.taps[1])
	r.live[0] = true

	return nil
}

// advance shifts the taps by one source frame.
func (r *Resampler) advance() error {
	first := r.taps[0]
	copy(r.taps[:], r.taps[1:])
	copy(r.live[:], r.live[1:])
	r.taps[3] = first

	ok, err := r.readFrame(r.taps[3])
	if err != nil {
		return err
	}

	r.live[3] = ok
	if !ok {
		copy(r.taps[3], r.taps[2])
	}

	return nil
}

// readFrame reads one source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for range maxEmptyReads {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.frame)
		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resampler: %w", err)
		}

		if n == r.channels {
			copy(dst, r.frame)
			r.filter(dst)
			return true, nil
		}
	}

	return false, fmt.Errorf("resampler: %w", io.ErrNoProgress)
}

// filter applies y[n] = a*x[n] + (1-a)*y[n-1] per channel. The state starts
// at the first frame so there is no warm-up transient.
func (r *Resampler) filter(frame []float32) {
	if !r.smooth {
		return
	}

	if !r.lpReady {
		copy(r.lp, frame)
		r.lpReady = true
	}

	for c, x := range frame {
		r.lp[c] = r.alpha*x + (1-r.alpha)*r.lp[c]
		frame[c] = r.lp[c]
	}
}
