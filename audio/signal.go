// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Signal is a fully decoded mono signal in float64, the form the speech
// package analyses.
type Signal struct {
	SampleRate int
	Samples    []float64
}

// Duration of the signal. Zero when SampleRate is not positive.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// ReadSignal drains src into a Signal, reading bufferSize samples at a time.
// src must be mono; use a MonoMixer first otherwise. src is not closed.
func ReadSignal(src Source, bufferSize int) (Signal, error) {
	if bufferSize <= 0 {
		return Signal{}, fmt.Errorf("read signal with buffer %d: %w", bufferSize, ErrInvalidBufferSize)
	}

	if ch := src.Channels(); ch != 1 {
		return Signal{}, fmt.Errorf("read signal from %d channels: %w", ch, ErrNotMono)
	}

	sig := Signal{SampleRate: src.SampleRate()}
	buf := make([]float32, bufferSize)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n == 0 && err == nil {
			if empty++; empty >= maxEmptyReads {
				return Signal{}, fmt.Errorf("read signal: %w", io.ErrNoProgress)
			}
			continue
		}
		empty = 0

		for _, s := range buf[:n] {
			sig.Samples = append(sig.Samples, float64(s))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Signal{}, fmt.Errorf("read signal: %w", err)
		}
	}

	if sig.Samples == nil {
		sig.Samples = []float64{}
	}

	return sig, nil
}
