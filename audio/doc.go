// SPDX-License-Identifier: EPL-2.0

// Package audio turns decoded audio streams into signals ready for
// short-time analysis.
//
// # Sources
//
// Every decoder and processor implements Source, a pull-based stream of
// interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF at the end of the stream, possibly together with
// the final samples.
//
// # Processing chain
//
// A Resampler changes the sample rate with Catmull-Rom interpolation and a
// one-pole low-pass filter when downsampling. A MonoMixer averages channels.
// ReadSignal drains the resulting mono stream into a float64 Signal:
//
//	r, err := audio.NewResampler(src, 16000)
//	if err != nil {
//	    return err
//	}
//	sig, err := audio.ReadSignal(audio.NewMonoMixer(r), 4096)
//
// # Format registry
//
// Registry maps format names, usually file extensions, to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("speech.wav")
package audio
