// SPDX-License-Identifier: EPL-2.0

package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ik5/speechframe/internal/config"
	"github.com/ik5/speechframe/speech"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	if err := config.Validate(config.Default()); err != nil {
		t.Errorf("Validate(Default()) = %v", err)
	}
}

func TestLoadFromReader_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if *cfg != *config.Default() {
		t.Errorf("got %+v, want defaults", *cfg)
	}
}

func TestLoadFromReader_OverridesDefaults(t *testing.T) {
	t.Parallel()

	yaml := `
frame_length: 400
hop_length: 160
window: Hanning
estimator: fft
target_rate: 16000
log_level: debug
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if cfg.FrameLength != 400 || cfg.HopLength != 160 || cfg.TargetRate != 16000 {
		t.Errorf("got %+v", *cfg)
	}
	if cfg.Stride != 20 || cfg.Threshold != 0.2 || cfg.BufferSize != 4096 {
		t.Errorf("unset fields lost their defaults: %+v", *cfg)
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}

	ac := cfg.Analyzer()
	if ac.Window != "Hanning" || ac.Estimator != speech.EstimatorFFT || ac.FrameLength != 400 {
		t.Errorf("Analyzer() = %+v", ac)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("frame_lenght: 10\n"))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "frame_lenght") {
		t.Errorf("error should name the field, got: %v", err)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	t.Parallel()

	yaml := `
frame_length: 0
hop_length: -1
window: kaiser
threshold: -0.5
stride: 0
workers: -1
estimator: dft
target_rate: -8000
buffer_size: 0
log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	for _, field := range []string{
		"frame_length", "hop_length", "window", "threshold", "stride",
		"workers", "estimator", "target_rate", "buffer_size", "log_level",
	} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %s, got: %v", field, err)
		}
	}

	if !errors.Is(err, speech.ErrUnsupportedWindowType) {
		t.Errorf("error should wrap ErrUnsupportedWindowType, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "speechframe.yaml")
	if err := os.WriteFile(path, []byte("stride: 1\nworkers: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Stride != 1 || cfg.Workers != 2 {
		t.Errorf("got %+v", *cfg)
	}

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestValidate_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		wantErr bool
		want    logrus.Level
	}{
		{"debug", false, logrus.DebugLevel},
		{"info", false, logrus.InfoLevel},
		{"warn", false, logrus.WarnLevel},
		{"error", false, logrus.ErrorLevel},
		{"trace", true, 0},
		{"fatal", true, 0},
		{"panic", true, 0},
		{"INFO", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			cfg.LogLevel = tt.level

			err := config.Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !strings.Contains(err.Error(), "log_level") {
					t.Errorf("error should mention log_level, got: %v", err)
				}
				return
			}

			if cfg.Level() != tt.want {
				t.Errorf("Level() = %v, want %v", cfg.Level(), tt.want)
			}
		})
	}
}
