// SPDX-License-Identifier: EPL-2.0

package speechframe

import (
	"fmt"
	"os"

	"github.com/ik5/speechframe/audio"
)

// LoadSignal reads src to the end as a mono float64 signal. When targetRate
// is positive and differs from the source rate the audio is resampled first.
// src is not closed.
func LoadSignal(src audio.Source, targetRate, bufferSize int) (audio.Signal, error) {
	if bufferSize <= 0 {
		return audio.Signal{}, fmt.Errorf("load signal with buffer %d: %w", bufferSize, audio.ErrInvalidBufferSize)
	}

	stream := src
	if targetRate > 0 && targetRate != src.SampleRate() {
		r, err := audio.NewResampler(src, targetRate)
		if err != nil {
			return audio.Signal{}, err
		}
		stream = r
	}

	return audio.ReadSignal(audio.NewMonoMixer(stream), bufferSize)
}

// DecodeFile opens path, decodes it with the decoder registered for its
// extension in NewRegistry and returns it as a mono signal, see LoadSignal.
func DecodeFile(path string, targetRate, bufferSize int) (audio.Signal, error) {
	return decodeFile(NewRegistry(), path, targetRate, bufferSize)
}

func decodeFile(registry *audio.Registry, path string, targetRate, bufferSize int) (audio.Signal, error) {
	decoder, err := registry.Lookup(path)
	if err != nil {
		return audio.Signal{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return audio.Signal{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := decoder.Decode(f)
	if err != nil {
		return audio.Signal{}, fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Close()

	sig, err := LoadSignal(src, targetRate, bufferSize)
	if err != nil {
		return audio.Signal{}, fmt.Errorf("decode %s: %w", path, err)
	}

	return sig, nil
}
