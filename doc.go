// SPDX-License-Identifier: EPL-2.0

// Package speechframe loads audio files into signals for short-time speech
// analysis.
//
// The analysis primitives live in the speech subpackage; this package ties
// them to the decoders under formats/ and the processing chain of the audio
// package.
//
// # Supported Formats
//
//   - WAV, integer PCM 8/16/24/32-bit, via formats/wav
//   - AIFF, integer PCM 8/16/24/32-bit, via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Quick Start
//
//	sig, err := speechframe.DecodeFile("speech.wav", 0, 4096)
//	if err != nil {
//	    return err
//	}
//
//	frames, err := speech.FrameSignal(sig.Samples, 25, 10)
//
// DecodeFile picks the decoder from the file extension, mixes the audio to
// mono and, when targetRate is positive, resamples it. LoadSignal does the
// same for a Source that is already open.
//
// For concurrent feature extraction over all frames see the analyzer package;
// cmd/speechframe wraps both in a command-line tool.
package speechframe
