// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files into audio clips.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always
// produces signed 16-bit little-endian stereo. The whole stream is read
// into memory:
//
//	clip, err := mp3.Decoder{}.Decode(f)
//
// A stream that yields no whole frame fails with audio.ErrEmptyClip.
package mp3
