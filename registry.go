// SPDX-License-Identifier: EPL-2.0

package speechframe

import (
	"github.com/ik5/speechframe/audio"
	"github.com/ik5/speechframe/formats/aiff"
	"github.com/ik5/speechframe/formats/mp3"
	"github.com/ik5/speechframe/formats/vorbis"
	"github.com/ik5/speechframe/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder registered under
// its usual file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})

	return r
}
