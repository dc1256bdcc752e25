// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmgr/audio"
)

// oggReader is the part of oggvorbis.Reader the decoder uses, so tests
// can substitute it.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values (frames * channels) decoded.
	Read([]float32) (int, error)
}

// source adapts an oggReader to audio.Source.
type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	if n == 0 && err == nil {
		return 0, io.EOF
	}

	return n, err
}

type Decoder struct{}

// Decode renders the stream to a 16-bit clip. Streams with more than two
// channels are mixed down to stereo.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decode(dec)
}

func decode(dec oggReader) (*audio.Clip, error) {
	var src audio.Source = &source{dec: dec}
	if dec.Channels() > 2 {
		src = audio.NewStereoMixer(src)
	}

	return audio.Render16(src, 4096)
}
