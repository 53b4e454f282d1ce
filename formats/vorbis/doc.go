// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// The decoder already produces float32 samples, clipped to [-1, 1], so the
// Source hands them through without conversion:
//
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
