// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into audio clips.
//
// Decoding is done by github.com/jfreymuth/oggvorbis, which yields float
// samples. They are rendered to signed 16-bit little-endian PCM at the
// stream's own rate. Streams with more than two channels are mixed down
// to stereo first, since devices only accept mono or stereo buffers.
//
//	clip, err := vorbis.Decoder{}.Decode(f)
package vorbis
