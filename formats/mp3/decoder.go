// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmgr/audio"
)

// mp3Reader is the part of gomp3.Decoder the decoder uses, so tests can
// substitute it.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels   = 2
	frameBytes = channels * 2
)

type Decoder struct{}

// Decode reads the whole stream into a 16-bit stereo clip.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decode(dec)
}

func decode(dec mp3Reader) (*audio.Clip, error) {
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	pcm = pcm[:len(pcm)-len(pcm)%frameBytes]
	if len(pcm) == 0 {
		return nil, audio.ErrEmptyClip
	}

	return audio.NewClip(channels, int32(dec.SampleRate()), 16, pcm), nil
}
