// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmgr/audio"
)

// aiffReader is the part of aiff.Decoder the decoder uses, so tests can
// substitute it.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

// Decode reads an 8 or 16-bit AIFF file into a clip of the same depth.
// AIFF stores signed big-endian samples; the clip holds unsigned 8-bit or
// signed little-endian 16-bit data.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Clip, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	return decode(dec, int(dec.BitDepth))
}

func decode(dec aiffReader, bits int) (*audio.Clip, error) {
	if bits != 8 && bits != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bits)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, ErrUnsupportedAiffLayout
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, 4096-4096%format.NumChannels),
		Format: format,
	}

	var pcm []byte
	for {
		n, err := dec.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			if bits == 8 {
				pcm = append(pcm, uint8(int8(v))+128)
			} else {
				pcm = binary.LittleEndian.AppendUint16(pcm, uint16(int16(v)))
			}
		}

		if err == io.EOF || (err == nil && n < len(buf.Data)) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(pcm) == 0 {
		return nil, audio.ErrEmptyClip
	}

	return audio.NewClip(uint8(format.NumChannels), int32(format.SampleRate), uint8(bits), pcm), nil
}
