// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmgr/audio"
)

// header builds the canonical 44-byte header for f carrying dataSize
// bytes of payload.
func header(f audio.Format, dataSize int) [HeaderSize]byte {
	var h [HeaderSize]byte

	blockAlign := uint16(f.FrameSize())
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+dataSize))
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(h[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(f.SampleRate)*uint32(blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], uint16(f.BitsPerSample))
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataSize))

	return h
}

// Encode writes pcm as a canonical WAVE file laid out as f. f.DataSize is
// ignored; the header declares len(pcm).
func Encode(w io.Writer, f audio.Format, pcm []byte) error {
	if _, err := f.Layout(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedLayout, err)
	}
	if len(pcm)%f.FrameSize() != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of %d-byte frames",
			ErrUnsupportedLayout, len(pcm), f.FrameSize())
	}

	h := header(f, len(pcm))
	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	for i := 0; i < len(pcm); i += chunkSize {
		end := min(i+chunkSize, len(pcm))
		if _, err := w.Write(pcm[i:end]); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// EncodeClip writes c with Encode.
func EncodeClip(w io.Writer, c *audio.Clip) error {
	return Encode(w, c.Format, c.Data)
}

// EncodeFile writes c to path through the go-audio encoder, which patches
// the RIFF and data sizes on Close.
func EncodeFile(path string, c *audio.Clip) (err error) {
	if _, err := c.Format.Layout(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedLayout, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	enc := gowav.NewEncoder(f, int(c.Format.SampleRate), int(c.Format.BitsPerSample), int(c.Format.Channels), pcmFormat)
	if err := enc.Write(intBuffer(c)); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// intBuffer widens the clip's samples. 8-bit samples stay unsigned, the
// go-audio encoder writes them back as bytes.
func intBuffer(c *audio.Clip) *goaudio.IntBuffer {
	bits := int(c.Format.BitsPerSample)

	var data []int
	if bits == 8 {
		data = make([]int, len(c.Data))
		for i, b := range c.Data {
			data[i] = int(b)
		}
	} else {
		data = make([]int, len(c.Data)/2)
		for i := range data {
			data[i] = int(int16(binary.LittleEndian.Uint16(c.Data[i*2:])))
		}
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: int(c.Format.Channels),
			SampleRate:  int(c.Format.SampleRate),
		},
		Data:           data,
		SourceBitDepth: bits,
	}
}
