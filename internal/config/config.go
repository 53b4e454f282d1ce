// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the speechframe command.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/speechframe/analyzer"
	"github.com/ik5/speechframe/speech"
)

// Config mirrors the YAML file. Fields missing from the file keep the values
// of Default.
type Config struct {
	FrameLength int     `yaml:"frame_length"`
	HopLength   int     `yaml:"hop_length"`
	Window      string  `yaml:"window"`
	Threshold   float64 `yaml:"threshold"`
	Stride      int     `yaml:"stride"`
	Workers     int     `yaml:"workers"`
	Estimator   string  `yaml:"estimator"`
	TargetRate  int     `yaml:"target_rate"`
	BufferSize  int     `yaml:"buffer_size"`
	LogLevel    string  `yaml:"log_level"`
}

// logLevels are the accepted log_level values.
var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		FrameLength: 25,
		HopLength:   10,
		Window:      string(speech.Hamming),
		Threshold:   0.2,
		Stride:      20,
		Workers:     0,
		Estimator:   string(speech.EstimatorAuto),
		TargetRate:  0,
		BufferSize:  4096,
		LogLevel:    "info",
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

// LoadFromReader decodes YAML from r over Default and validates the result.
// Unknown keys are rejected. An empty document yields Default.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field of cfg as one joined error.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.FrameLength <= 0 {
		errs = append(errs, fmt.Errorf("frame_length %d must be positive", cfg.FrameLength))
	}
	if cfg.HopLength <= 0 {
		errs = append(errs, fmt.Errorf("hop_length %d must be positive", cfg.HopLength))
	}
	if _, err := speech.ParseWindowType(cfg.Window); err != nil {
		errs = append(errs, fmt.Errorf("window: %w; known: %v", err, speech.WindowTypes()))
	}
	if cfg.Threshold < 0 || math.IsNaN(cfg.Threshold) {
		errs = append(errs, fmt.Errorf("threshold %v must not be negative", cfg.Threshold))
	}
	if cfg.Stride < 1 {
		errs = append(errs, fmt.Errorf("stride %d must be at least 1", cfg.Stride))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", cfg.Workers))
	}
	if _, err := speech.ParseEstimator(cfg.Estimator); err != nil {
		errs = append(errs, fmt.Errorf("estimator: %w; valid values: direct, fft, auto", err))
	}
	if cfg.TargetRate < 0 {
		errs = append(errs, fmt.Errorf("target_rate %d must not be negative", cfg.TargetRate))
	}
	if cfg.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer_size %d must be positive", cfg.BufferSize))
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	return errors.Join(errs...)
}

// Level is the parsed log_level, info when it does not parse.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return lvl
}

// Analyzer converts the analysis fields to an analyzer.Config.
func (c *Config) Analyzer() analyzer.Config {
	return analyzer.Config{
		FrameLength: c.FrameLength,
		HopLength:   c.HopLength,
		Window:      speech.WindowType(c.Window),
		Threshold:   c.Threshold,
		Stride:      c.Stride,
		Workers:     c.Workers,
		Estimator:   speech.Estimator(c.Estimator),
	}
}
