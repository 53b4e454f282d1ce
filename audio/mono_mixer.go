// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages the channels of every frame of src into one sample.
// Mono sources pass through untouched.
type MonoMixer struct {
	src Source
	tmp []float32

	// pending holds samples read from src but not mixed yet, which may end
	// in a partial frame.
	pending []float32
	err     error
}

// NewMonoMixer returns a mixer reading from src.
func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("mono mixer: %w", err)
	}

	return nil
}

// ReadSamples fills dst with up to len(dst) mono samples. A read from src
// that ends inside a frame is completed by the next read. A partial frame
// left when src ends is dropped.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if len(m.pending) < need && m.err == nil {
		m.fill(need)
	}

	frames := min(len(m.pending)/channels, len(dst))
	in := m.pending[:frames*channels]

	switch channels {
	case 2:
		for f := range frames {
			dst[f] = (in[2*f] + in[2*f+1]) * 0.5
		}
	default:
		inv := 1 / float32(channels)
		for f := range frames {
			var sum float32
			for _, s := range in[f*channels : (f+1)*channels] {
				sum += s
			}
			dst[f] = sum * inv
		}
	}

	m.pending = m.pending[frames*channels:]

	if m.err != nil && len(m.pending) < channels {
		return frames, m.err
	}

	return frames, nil
}

// fill appends one read of size samples from src to the pending samples.
// size is a whole number of frames.
func (m *MonoMixer) fill(size int) {
	total := len(m.pending) + size
	if cap(m.tmp) < total {
		m.tmp = make([]float32, total)
	}
	buf := m.tmp[:total]

	have := copy(buf, m.pending)
	n, err := m.src.ReadSamples(buf[have:])

	m.pending = buf[:have+n]
	m.err = err
}
