// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files through
// github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 8, 16, 24 and 32 bits with any channel
// count and sample rate. Samples come out as float32 in [-1, 1):
//
//	f, err := os.Open("speech.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := wav.Decoder{}.Decode(f)
//
// Floating-point WAV files are rejected with ErrUnsupportedEncoding.
//
// # Writing
//
// WriteWAV16 and WriteFloatWAV16 write mono 16-bit files, WriteInt any
// supported layout. The go-audio encoder patches the RIFF sizes on Close, so
// the destination has to be an io.WriteSeeker such as an *os.File.
package wav
