// SPDX-License-Identifier: EPL-2.0

// Command speechframe decodes an audio file, cuts it into short frames and
// prints the energy, zero-crossing count and autocorrelation of every
// analysed frame.
//
// Usage:
//
//	speechframe [flags] <input.{wav|aif|aiff|mp3|ogg}>
//	speechframe -config speechframe.yaml -rate 16000 speech.wav
//	speechframe -stride 1 -window hann -out mono.wav speech.mp3
//
// Flags that are set explicitly override the configuration file.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/speechframe"
	"github.com/ik5/speechframe/analyzer"
	"github.com/ik5/speechframe/audio"
	"github.com/ik5/speechframe/formats/wav"
	"github.com/ik5/speechframe/internal/config"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the command line. Values only matter for flags that were set.
type flags struct {
	configPath string
	output     string

	frameLength int
	hopLength   int
	window      string
	threshold   float64
	stride      int
	workers     int
	estimator   string
	targetRate  int
	bufferSize  int
	logLevel    string
}

func (f *flags) register(fs *flag.FlagSet) {
	def := config.Default()

	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.output, "out", "", "also write the analysed mono signal as 16-bit WAV")

	fs.IntVar(&f.frameLength, "frame-length", def.FrameLength, "frame length in samples")
	fs.IntVar(&f.hopLength, "hop-length", def.HopLength, "samples between frame starts")
	fs.StringVar(&f.window, "window", def.Window, "window type (hann, hamming, etc.)")
	fs.Float64Var(&f.threshold, "threshold", def.Threshold, "center clipping threshold")
	fs.IntVar(&f.stride, "stride", def.Stride, "analyse every Nth frame")
	fs.IntVar(&f.workers, "workers", def.Workers, "frames analysed at once, 0 for one per CPU")
	fs.StringVar(&f.estimator, "estimator", def.Estimator, "autocorrelation estimator: direct, fft or auto")
	fs.IntVar(&f.targetRate, "rate", def.TargetRate, "resample to this rate in Hz, 0 keeps the source rate")
	fs.IntVar(&f.bufferSize, "buffer", def.BufferSize, "decode buffer in samples")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "debug, info, warn or error")
}

// apply copies the flags that were set on the command line into cfg.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "frame-length":
			cfg.FrameLength = f.frameLength
		case "hop-length":
			cfg.HopLength = f.hopLength
		case "window":
			cfg.Window = f.window
		case "threshold":
			cfg.Threshold = f.threshold
		case "stride":
			cfg.Stride = f.stride
		case "workers":
			cfg.Workers = f.workers
		case "estimator":
			cfg.Estimator = f.estimator
		case "rate":
			cfg.TargetRate = f.targetRate
		case "buffer":
			cfg.BufferSize = f.bufferSize
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("speechframe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: speechframe [flags] <input.{%s}>\n",
			strings.Join(speechframe.NewRegistry().Formats(), "|"))
		fs.PrintDefaults()
	}

	var f flags
	f.register(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		cfg = loaded
	}

	f.apply(fs, cfg)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "invalid flags:\n%v\n", err)
		return exitUsage
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(cfg.Level())

	log := logger.WithField("input", fs.Arg(0))

	if err := analyse(ctx, fs.Arg(0), f.output, cfg, log, stdout); err != nil {
		log.WithError(err).Error("analysis failed")
		return exitError
	}

	return exitOK
}

func analyse(ctx context.Context, path, output string, cfg *config.Config, log *logrus.Entry, stdout io.Writer) error {
	a, err := analyzer.New(cfg.Analyzer(), analyzer.WithLogger(log))
	if err != nil {
		return err
	}

	sig, err := speechframe.DecodeFile(path, cfg.TargetRate, cfg.BufferSize)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"rate":     sig.SampleRate,
		"samples":  len(sig.Samples),
		"duration": sig.Duration(),
	}).Info("decoded")

	if output != "" {
		if err := writeSignal(output, sig); err != nil {
			return err
		}
		log.WithField("output", output).Info("wrote mono signal")
	}

	features, err := a.Analyze(ctx, sig.Samples)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout)
	report(w, sig.SampleRate, features)

	return w.Flush()
}

func report(w io.Writer, sampleRate int, features []analyzer.FrameFeatures) {
	fmt.Fprintf(w, "Sampling Rate: %d Hz\n", sampleRate)

	for _, f := range features {
		fmt.Fprintf(w, "Frame %d at %v\n", f.Index, f.Time(sampleRate))
		fmt.Fprintf(w, "  Frame energy: %g\n", f.Energy)
		fmt.Fprintf(w, "  Zero crossing rate: %d\n", f.ZeroCrossings)
		fmt.Fprintf(w, "  Autocorrelation coefficients: %v\n", f.Autocorrelation)
	}

	s := analyzer.Summarize(features)
	fmt.Fprintf(w, "Analysed %d frames: mean energy %g, max energy %g, mean zero crossings %.2f\n",
		s.Frames, s.MeanEnergy, s.MaxEnergy, s.MeanZeroCrossings)
}

func writeSignal(path string, sig audio.Signal) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := wav.WriteFloatWAV16(out, sig.SampleRate, sig.Samples); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}
