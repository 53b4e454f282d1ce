// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/speechframe/audio"
)

// maxEmptyReads bounds the packets in a row that may decode to nothing.
const maxEmptyReads = 100

// oggReader is the part of oggvorbis.Reader a source reads from. Read
// returns interleaved values, always a multiple of Channels.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.dec.Channels() != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if len(dst) == 0 {
		return 0, nil
	}

	for range maxEmptyReads {
		n, err := s.dec.Read(dst)
		if err != nil && !errors.Is(err, io.EOF) {
			return n, fmt.Errorf("vorbis: %w", err)
		}

		if n > 0 || err != nil {
			return n, err
		}
	}

	return 0, fmt.Errorf("vorbis: %w", io.ErrNoProgress)
}

type Decoder struct{}

// Decode reads the Vorbis identification, comment and setup headers of r.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return &source{dec: dec}, nil
}
