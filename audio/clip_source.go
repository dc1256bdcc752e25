// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"io"

	"github.com/ik5/audmgr/utils"
)

// ClipSource streams a Clip as float32 samples.
// With looping enabled the stream wraps to the first frame and never
// reports io.EOF.
type ClipSource struct {
	clip     *Clip
	layout   Layout
	channels int
	frames   int
	frame    int
	rate     int
	loop     bool
}

// NewClipSource fails with an *UnsupportedFormatError when the clip has
// no device layout.
func NewClipSource(c *Clip) (*ClipSource, error) {
	layout, err := c.Format.Layout()
	if err != nil {
		return nil, err
	}

	s := &ClipSource{
		clip:     c,
		layout:   layout,
		channels: layout.Channels(),
		rate:     int(c.Format.SampleRate),
	}
	s.frames = len(c.Data) / (s.channels * layout.BitsPerSample() / 8)

	return s, nil
}

func (s *ClipSource) SampleRate() int { return s.rate }
func (s *ClipSource) Channels() int   { return s.channels }
func (s *ClipSource) BufSize() int    { return 4096 }
func (s *ClipSource) Close() error    { return nil }

// SetLooping controls whether the stream wraps at the end.
func (s *ClipSource) SetLooping(loop bool) { s.loop = loop }

// Frames is the clip length in frames.
func (s *ClipSource) Frames() int { return s.frames }

// Position is the index of the next frame to be read.
func (s *ClipSource) Position() int { return s.frame }

// Done reports whether a non-looping stream has been read to the end.
func (s *ClipSource) Done() bool { return !s.loop && s.frame >= s.frames }

// SeekFrame moves the read cursor, clamped to [0, Frames()].
func (s *ClipSource) SeekFrame(frame int) {
	s.frame = max(0, min(frame, s.frames))
}

func (s *ClipSource) sample(frame, ch int) float32 {
	switch s.layout {
	case Mono8, Stereo8:
		return utils.Uint8ToFloat32(s.clip.Data[frame*s.channels+ch])
	default:
		off := (frame*s.channels + ch) * 2
		return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.clip.Data[off : off+2])))
	}
}

func (s *ClipSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.frames == 0 {
		return 0, io.EOF
	}

	want := len(dst) / s.channels
	written := 0

	for written < want {
		if s.frame >= s.frames {
			if !s.loop {
				break
			}
			s.frame = 0
		}

		for c := range s.channels {
			dst[written*s.channels+c] = s.sample(s.frame, c)
		}
		s.frame++
		written++
	}

	if !s.loop && s.frame >= s.frames {
		return written * s.channels, io.EOF
	}

	return written * s.channels, nil
}
