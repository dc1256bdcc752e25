// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audmgr/utils"
)

// Render16 drains src into a 16-bit clip with src's rate and channel count.
// bufSize is the read chunk in samples; values < 1 use src.BufSize().
func Render16(src Source, bufSize int) (*Clip, error) {
	ch := src.Channels()
	if ch < 1 || ch > 2 {
		return nil, &UnsupportedFormatError{Channels: uint8(ch), Bits: 16}
	}
	if bufSize < 1 {
		bufSize = src.BufSize()
	}
	bufSize = max(bufSize-bufSize%ch, ch)

	buf := make([]float32, bufSize)
	var pcm []byte

	for {
		n, err := src.ReadSamples(buf)
		for _, s := range buf[:n] {
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(utils.Float32ToInt16(s)))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(pcm) == 0 {
		return nil, ErrEmptyClip
	}

	return NewClip(uint8(ch), int32(src.SampleRate()), 16, pcm), nil
}

// Convert resamples c to rate Hz and mixes it to channels (1 or 2),
// returning a new 16-bit clip.
func Convert(c *Clip, rate, channels int) (*Clip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", ErrInvalidRate, rate)
	}

	src, err := NewClipSource(c)
	if err != nil {
		return nil, err
	}

	var mixed Source
	switch channels {
	case 1:
		mixed = NewMonoMixer(src)
	case 2:
		mixed = NewStereoMixer(src)
	default:
		return nil, &UnsupportedFormatError{Channels: uint8(channels), Bits: 16}
	}

	return Render16(NewResampler(mixed, rate), 4096)
}
