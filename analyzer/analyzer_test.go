// SPDX-License-Identifier: EPL-2.0

package analyzer_test

import (
	"context"
	"errors"
	"math"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ik5/speechframe/analyzer"
	"github.com/ik5/speechframe/internal/audiotest"
	"github.com/ik5/speechframe/speech"
)

// reference measures frame index the slow way, one call after the other.
func reference(t *testing.T, signal []float64, cfg analyzer.Config, index int) analyzer.FrameFeatures {
	t.Helper()

	frames, err := speech.FrameSignal(signal, cfg.FrameLength, cfg.HopLength)
	if err != nil {
		t.Fatal(err)
	}

	windowed, err := speech.ApplyWindow(frames[index], cfg.Window)
	if err != nil {
		t.Fatal(err)
	}

	clipped, err := speech.CenterClip(windowed, cfg.Threshold)
	if err != nil {
		t.Fatal(err)
	}

	return analyzer.FrameFeatures{
		Index:           index,
		Offset:          index * cfg.HopLength,
		Energy:          speech.Energy(clipped),
		ZeroCrossings:   speech.ZeroCrossings(clipped),
		Autocorrelation: speech.Autocorrelation(clipped),
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	a, err := analyzer.New(analyzer.Config{FrameLength: 4, HopLength: 2, Window: " Hanning "})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := a.Config()
	if got.Window != speech.Hann {
		t.Errorf("Window = %q, want %q", got.Window, speech.Hann)
	}
	if got.Stride != 1 {
		t.Errorf("Stride = %d, want 1", got.Stride)
	}
	if got.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", got.Workers, runtime.NumCPU())
	}
	if got.Estimator != speech.EstimatorAuto {
		t.Errorf("Estimator = %q, want %q", got.Estimator, speech.EstimatorAuto)
	}
}

func TestNew_OptionsOverrideConfig(t *testing.T) {
	t.Parallel()

	a, err := analyzer.New(analyzer.DefaultConfig(),
		analyzer.WithStride(3),
		analyzer.WithWorkers(2),
		analyzer.WithEstimator(speech.EstimatorFFT),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := a.Config()
	if got.Stride != 3 || got.Workers != 2 || got.Estimator != speech.EstimatorFFT {
		t.Errorf("Config() = %+v, want stride 3, 2 workers, fft", got)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	base := analyzer.DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*analyzer.Config)
		opts    []analyzer.Option
		wantErr error
	}{
		{"zero frame length", func(c *analyzer.Config) { c.FrameLength = 0 }, nil, speech.ErrInvalidArgument},
		{"negative hop", func(c *analyzer.Config) { c.HopLength = -1 }, nil, speech.ErrInvalidArgument},
		{"unknown window", func(c *analyzer.Config) { c.Window = "kaiser" }, nil, speech.ErrUnsupportedWindowType},
		{"empty window", func(c *analyzer.Config) { c.Window = "" }, nil, speech.ErrUnsupportedWindowType},
		{"negative threshold", func(c *analyzer.Config) { c.Threshold = -0.1 }, nil, speech.ErrInvalidArgument},
		{"NaN threshold", func(c *analyzer.Config) { c.Threshold = math.NaN() }, nil, speech.ErrInvalidArgument},
		{"negative stride", nil, []analyzer.Option{analyzer.WithStride(-1)}, speech.ErrInvalidArgument},
		{"negative workers", nil, []analyzer.Option{analyzer.WithWorkers(-2)}, speech.ErrInvalidArgument},
		{"unknown estimator", nil, []analyzer.Option{analyzer.WithEstimator("dft")}, speech.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			if _, err := analyzer.New(cfg, tt.opts...); !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyze_MatchesSequentialPipeline(t *testing.T) {
	t.Parallel()

	cfg := analyzer.DefaultConfig()
	signal := audiotest.SineSignal(1000, 440, 8000)

	a, err := analyzer.New(cfg, analyzer.WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}

	got, err := a.Analyze(context.Background(), signal)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// 98 frames, every 20th analysed
	if len(got) != 5 {
		t.Fatalf("got %d frames, want 5", len(got))
	}

	for i, f := range got {
		want := reference(t, signal, cfg, i*20)

		if f.Index != want.Index || f.Offset != want.Offset {
			t.Errorf("frame %d: index %d offset %d, want %d and %d", i, f.Index, f.Offset, want.Index, want.Offset)
		}
		if f.Energy != want.Energy {
			t.Errorf("frame %d: energy %v, want %v", i, f.Energy, want.Energy)
		}
		if f.ZeroCrossings != want.ZeroCrossings {
			t.Errorf("frame %d: zero crossings %d, want %d", i, f.ZeroCrossings, want.ZeroCrossings)
		}
		if !slices.Equal(f.Autocorrelation, want.Autocorrelation) {
			t.Errorf("frame %d: autocorrelation %v, want %v", i, f.Autocorrelation, want.Autocorrelation)
		}
	}
}

func TestAnalyze_OrderIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	signal := audiotest.SineSignal(16000, 150, 16000)
	cfg := analyzer.Config{FrameLength: 400, HopLength: 160, Window: speech.Hann, Threshold: 0.3}

	run := func(workers int) []analyzer.FrameFeatures {
		a, err := analyzer.New(cfg, analyzer.WithWorkers(workers))
		if err != nil {
			t.Fatal(err)
		}

		out, err := a.Analyze(context.Background(), signal)
		if err != nil {
			t.Fatalf("Analyze(workers=%d) error = %v", workers, err)
		}

		return out
	}

	serial, parallel := run(1), run(8)
	if len(serial) != 98 || len(parallel) != len(serial) {
		t.Fatalf("got %d and %d frames, want 98", len(serial), len(parallel))
	}

	for i := range serial {
		if serial[i].Index != i || parallel[i].Index != i {
			t.Fatalf("frame %d: indices %d and %d", i, serial[i].Index, parallel[i].Index)
		}
		if serial[i].Energy != parallel[i].Energy {
			t.Errorf("frame %d: energy %v and %v", i, serial[i].Energy, parallel[i].Energy)
		}
	}
}

func TestAnalyze_ShortSignal(t *testing.T) {
	t.Parallel()

	a, err := analyzer.New(analyzer.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	got, err := a.Analyze(context.Background(), make([]float64, 24))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Analyze() = %v, want empty non-nil", got)
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	t.Parallel()

	a, err := analyzer.New(analyzer.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Analyze(ctx, make([]float64, 10000)); !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}

func TestAnalyze_Logs(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	a, err := analyzer.New(analyzer.DefaultConfig(),
		analyzer.WithWorkers(3),
		analyzer.WithLogger(logrus.NewEntry(logger)),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Analyze(context.Background(), make([]float64, 1000)); err != nil {
		t.Fatal(err)
	}

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}

	last := hook.LastEntry()
	if last.Message != "analysis finished" {
		t.Errorf("last message = %q", last.Message)
	}
	if last.Data["frames"] != 98 || last.Data["analyzed"] != 5 || last.Data["workers"] != 3 {
		t.Errorf("fields = %v, want frames=98 analyzed=5 workers=3", last.Data)
	}
}

func TestFrameFeatures_Time(t *testing.T) {
	t.Parallel()

	f := analyzer.FrameFeatures{Offset: 160}

	if got := f.Time(16000); got != 10*time.Millisecond {
		t.Errorf("Time(16000) = %v, want 10ms", got)
	}
	if got := f.Time(0); got != 0 {
		t.Errorf("Time(0) = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	if got := analyzer.Summarize(nil); got != (analyzer.Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}

	got := analyzer.Summarize([]analyzer.FrameFeatures{
		{Energy: 1, ZeroCrossings: 2},
		{Energy: 4, ZeroCrossings: 3},
		{Energy: 1, ZeroCrossings: 7},
	})

	want := analyzer.Summary{Frames: 3, MeanEnergy: 2, MaxEnergy: 4, MeanZeroCrossings: 4}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func BenchmarkAnalyze_OneSecond16k(b *testing.B) {
	signal := audiotest.SineSignal(16000, 150, 16000)

	a, err := analyzer.New(analyzer.Config{FrameLength: 400, HopLength: 160, Window: speech.Hamming, Threshold: 0.3})
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		_, _ = a.Analyze(ctx, signal)
	}
}
