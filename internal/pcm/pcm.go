// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer buffers of the go-audio decoders to
// audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/speechframe/audio"
	"github.com/ik5/speechframe/utils"
)

const defaultBufSize = 4096

var (
	ErrBitDepth = errors.New("unsupported PCM bit depth")
	ErrLayout   = errors.New("invalid PCM layout")
)

// IntReader is the part of the go-audio wav and aiff decoders a Source reads
// from. It reports the end of data either as io.EOF or as 0, nil.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Format describes the integer stream behind an IntReader.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned8 marks 8-bit data stored as 0..255 with silence at 128, as
	// WAV does. AIFF 8-bit data is signed.
	Unsigned8 bool
}

// Source converts integer PCM from an IntReader into float32 samples in
// [-1, 1).
type Source struct {
	dec    IntReader
	format Format
	offset int
	inv    float64
	buf    *goaudio.IntBuffer
	carry  []int
	eof    bool
}

// NewSource checks f and wraps dec.
func NewSource(dec IntReader, f Format) (*Source, error) {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return nil, fmt.Errorf("%d Hz, %d channels: %w", f.SampleRate, f.Channels, ErrLayout)
	}

	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%d bits: %w", f.BitDepth, ErrBitDepth)
	}

	s := &Source{
		dec:    dec,
		format: f,
		inv:    1 / utils.PCMScale(f.BitDepth),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			Data:           make([]int, defaultBufSize),
			SourceBitDepth: f.BitDepth,
		},
	}

	if f.BitDepth == 8 && f.Unsigned8 {
		s.offset = 128
	}

	return s, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.Channels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

// BitDepth of the underlying integer samples.
func (s *Source) BitDepth() int { return s.format.BitDepth }

// ReadSamples fills dst with whole frames. len(dst) must be a multiple of
// Channels. A trailing partial frame at the end of the data is dropped.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	channels := s.format.Channels
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	data := s.buf.Data[:len(dst)]

	have := copy(data, s.carry)
	s.carry = s.carry[:0]

	var err error
	for have < channels && !s.eof {
		s.buf.Data = data[have:]
		n, rerr := s.dec.PCMBuffer(s.buf)
		have += n

		switch {
		case errors.Is(rerr, io.EOF), n == 0 && rerr == nil:
			s.eof = true
		case rerr != nil:
			err = rerr
		}

		if err != nil {
			break
		}
	}
	s.buf.Data = data[:cap(data)]

	full := have - have%channels
	s.carry = append(s.carry, data[full:have]...)

	for i, v := range data[:full] {
		dst[i] = float32(float64(v-s.offset) * s.inv)
	}

	if err != nil {
		return full, fmt.Errorf("pcm: %w", err)
	}

	if s.eof {
		return full, io.EOF
	}

	return full, nil
}

// ReadSeeker returns r itself when it can seek, otherwise its whole content
// buffered in memory. The go-audio decoders need to seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}
