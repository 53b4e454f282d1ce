// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files through
// github.com/go-audio/aiff.
//
// Big-endian integer PCM at 8, 16, 24 and 32 bits is supported, with any
// channel count and sample rate:
//
//	f, err := os.Open("speech.aiff")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := aiff.Decoder{}.Decode(f)
//
// Compressed AIFF-C variants are not decoded.
package aiff
