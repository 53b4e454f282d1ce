// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/speechframe/utils"
)

// WriteInt writes interleaved integer PCM as a WAV file. 8-bit data is
// unsigned (silence at 128); wider depths are signed.
func WriteInt(w io.WriteSeeker, sampleRate, channels, bitDepth int, data []int) error {
	enc := gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finish file: %w", err)
	}

	return nil
}

// WriteWAV16 writes mono 16-bit PCM at sampleRate.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	return WriteInt(w, sampleRate, 1, 16, data)
}

// WriteFloatWAV16 writes normalized mono samples as 16-bit PCM. Samples
// outside [-1, 1] are clamped.
func WriteFloatWAV16(w io.WriteSeeker, sampleRate int, samples []float64) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float64ToInt16(s))
	}

	return WriteInt(w, sampleRate, 1, 16, data)
}
