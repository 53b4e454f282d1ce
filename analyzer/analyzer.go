// SPDX-License-Identifier: EPL-2.0

package analyzer

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/speechframe/speech"
)

// Config describes how a signal is cut into frames and which frames are
// analysed.
type Config struct {
	FrameLength int // samples per frame
	HopLength   int // samples between frame starts
	Window      speech.WindowType
	Threshold   float64 // center clipping level

	// Stride analyses every Stride-th frame. Zero means every frame.
	Stride int
	// Workers bounds the frames analysed at once. Zero means runtime.NumCPU.
	Workers int
	// Estimator for the autocorrelation. Empty means speech.EstimatorAuto.
	Estimator speech.Estimator
}

// DefaultConfig returns 25 sample frames every 10 samples, a Hamming
// window, clipping at 0.2 and every 20th frame analysed.
func DefaultConfig() Config {
	return Config{
		FrameLength: 25,
		HopLength:   10,
		Window:      speech.Hamming,
		Threshold:   0.2,
		Stride:      20,
		Estimator:   speech.EstimatorAuto,
	}
}

// Option overrides a Config field or attaches a collaborator.
type Option func(*Analyzer)

// WithStride analyses every n-th frame.
func WithStride(n int) Option {
	return func(a *Analyzer) { a.cfg.Stride = n }
}

// WithWorkers bounds the frames analysed at once.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.cfg.Workers = n }
}

// WithEstimator picks the autocorrelation estimator.
func WithEstimator(e speech.Estimator) Option {
	return func(a *Analyzer) { a.cfg.Estimator = e }
}

// WithLogger sets the entry analysis progress is logged to. A nil entry
// disables logging.
func WithLogger(log *logrus.Entry) Option {
	return func(a *Analyzer) { a.log = log }
}

// Analyzer runs the frame pipeline window, center clip, then energy, zero
// crossings and autocorrelation over the selected frames of a signal.
// An Analyzer is immutable and safe for concurrent use.
type Analyzer struct {
	cfg Config
	log *logrus.Entry
}

// New validates cfg together with opts. Length, threshold, stride, worker
// and estimator problems wrap speech.ErrInvalidArgument, an unknown window
// wraps speech.ErrUnsupportedWindowType.
func New(cfg Config, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		a.log = logrus.NewEntry(discard)
	}

	if err := a.normalize(); err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	return a, nil
}

func (a *Analyzer) normalize() error {
	c := &a.cfg

	if c.FrameLength <= 0 || c.HopLength <= 0 {
		return fmt.Errorf("frame length %d, hop length %d: %w",
			c.FrameLength, c.HopLength, speech.ErrInvalidArgument)
	}

	window, err := speech.ParseWindowType(string(c.Window))
	if err != nil {
		return err
	}
	c.Window = window

	if c.Threshold < 0 || math.IsNaN(c.Threshold) {
		return fmt.Errorf("threshold %v: %w", c.Threshold, speech.ErrInvalidArgument)
	}

	switch {
	case c.Stride < 0:
		return fmt.Errorf("stride %d: %w", c.Stride, speech.ErrInvalidArgument)
	case c.Stride == 0:
		c.Stride = 1
	}

	switch {
	case c.Workers < 0:
		return fmt.Errorf("workers %d: %w", c.Workers, speech.ErrInvalidArgument)
	case c.Workers == 0:
		c.Workers = runtime.NumCPU()
	}

	est, err := speech.ParseEstimator(string(c.Estimator))
	if err != nil {
		return err
	}
	c.Estimator = est

	return nil
}

// Config returns the effective configuration, defaults resolved.
func (a *Analyzer) Config() Config { return a.cfg }

// FrameFeatures are the measurements of one analysed frame.
type FrameFeatures struct {
	Index           int // frame number within the signal
	Offset          int // first sample of the frame
	Energy          float64
	ZeroCrossings   int
	Autocorrelation []float64
}

// Time is the start of the frame for a signal sampled at sampleRate.
func (f FrameFeatures) Time(sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}

	return time.Duration(f.Offset) * time.Second / time.Duration(sampleRate)
}

// Analyze frames samples and measures every Stride-th frame. Frames are
// processed concurrently but the result is always in temporal order.
// A signal shorter than one frame yields an empty result.
func (a *Analyzer) Analyze(ctx context.Context, samples []float64) ([]FrameFeatures, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	frames, err := speech.FrameViews(samples, a.cfg.FrameLength, a.cfg.HopLength)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	stride := a.cfg.Stride
	out := make([]FrameFeatures, (len(frames)+stride-1)/stride)

	log := a.log.WithFields(logrus.Fields{
		"frames":   len(frames),
		"analyzed": len(out),
		"workers":  a.cfg.Workers,
	})
	log.Debug("analysis started")

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.cfg.Workers)

	for i := range out {
		if egCtx.Err() != nil {
			break
		}

		index := i * stride
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			f, err := a.analyzeFrame(frames[index])
			if err != nil {
				return fmt.Errorf("frame %d: %w", index, err)
			}

			f.Index = index
			f.Offset = speech.FrameOffset(index, a.cfg.HopLength)
			out[i] = f

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	log.Debug("analysis finished")

	return out, nil
}

func (a *Analyzer) analyzeFrame(frame []float64) (FrameFeatures, error) {
	windowed, err := speech.ApplyWindow(frame, a.cfg.Window)
	if err != nil {
		return FrameFeatures{}, err
	}

	clipped, err := speech.CenterClip(windowed, a.cfg.Threshold)
	if err != nil {
		return FrameFeatures{}, err
	}

	r, err := speech.AutocorrelationWith(clipped, a.cfg.Estimator)
	if err != nil {
		return FrameFeatures{}, err
	}

	return FrameFeatures{
		Energy:          speech.Energy(clipped),
		ZeroCrossings:   speech.ZeroCrossings(clipped),
		Autocorrelation: r,
	}, nil
}
