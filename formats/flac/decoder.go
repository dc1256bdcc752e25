// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/ik5/audmgr/audio"
)

// blockReader yields one decoded FLAC frame at a time, as one sample
// slice per channel.
type blockReader interface {
	NextBlock() ([][]int32, error)
}

type streamReader struct {
	s *flac.Stream
}

func (r streamReader) NextBlock() ([][]int32, error) {
	f, err := r.s.ParseNext()
	if err != nil {
		return nil, err
	}

	block := make([][]int32, len(f.Subframes))
	for i, sf := range f.Subframes {
		block[i] = sf.Samples
	}

	return block, nil
}

type Decoder struct{}

// Decode reads a mono or stereo FLAC stream of 4 to 32 bits per sample
// into a 16-bit clip.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Clip, error) {
	s, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	defer s.Close()

	info := s.Info
	return decode(streamReader{s: s}, int(info.NChannels), int(info.SampleRate), int(info.BitsPerSample))
}

func decode(r blockReader, channels, rate, bits int) (*audio.Clip, error) {
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFlacLayout, channels)
	}
	if bits < 4 || bits > 32 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bits)
	}

	var pcm []byte
	for {
		block, err := r.NextBlock()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if len(block) != channels {
			return nil, fmt.Errorf("%w: frame has %d channels", ErrUnsupportedFlacLayout, len(block))
		}

		for i := range block[0] {
			for ch := range channels {
				pcm = binary.LittleEndian.AppendUint16(pcm, uint16(to16(block[ch][i], bits)))
			}
		}
	}

	if len(pcm) == 0 {
		return nil, audio.ErrEmptyClip
	}

	return audio.NewClip(uint8(channels), int32(rate), 16, pcm), nil
}

// to16 rescales a sample of the given depth to 16 bits.
func to16(v int32, bits int) int16 {
	if bits > 16 {
		return int16(v >> (bits - 16))
	}

	return int16(v << (16 - bits))
}
