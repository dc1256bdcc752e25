// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmgr/audio"
)

const pcmFormat = 1

// ChunkDecoder walks the RIFF chunk list to find fmt and data, so files
// with LIST, fact or other chunks decode correctly. It has to be chosen
// explicitly; Decoder never falls back to it.
type ChunkDecoder struct{}

func (ChunkDecoder) Decode(r io.ReadSeeker) (*audio.Clip, error) {
	d := gowav.NewDecoder(r)

	// FwdToPCM swallows header errors and leaves them in Err
	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDataChunk, err)
	}
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if d.PCMChunk == nil {
		return nil, ErrNoDataChunk
	}
	if d.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, d.WavAudioFormat)
	}

	data := make([]byte, d.PCMSize)
	n, err := io.ReadFull(d.PCMChunk, data)
	switch {
	case err == nil:
	case errors.Is(err, io.ErrUnexpectedEOF) && n == d.PCMSize-1:
		// odd-sized data chunk missing its pad byte
	default:
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	data = data[:n]

	clip := audio.NewClip(uint8(d.NumChans), int32(d.SampleRate), uint8(d.BitDepth), data)
	if fs := clip.Format.FrameSize(); fs > 0 && n%fs != 0 {
		// drop a trailing partial frame (usually the RIFF pad byte)
		clip = audio.NewClip(uint8(d.NumChans), int32(d.SampleRate), uint8(d.BitDepth), data[:n-n%fs])
	}

	return clip, nil
}

// Chunk is one entry in a RIFF chunk list. Size includes the pad byte of
// odd-sized chunks.
type Chunk struct {
	ID   string
	Size int
}

// Chunks lists the chunks of a WAVE file in file order.
func Chunks(r io.Reader) ([]Chunk, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: RIFF form %q", ErrNotWavFile, p.Format[:])
	}

	var chunks []Chunk
	for {
		ch, err := p.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return chunks, nil
			}
			return chunks, fmt.Errorf("%w", err)
		}
		chunks = append(chunks, Chunk{ID: string(ch.ID[:]), Size: ch.Size})
		ch.Drain()
	}
}

// IsCanonical reports whether chunks is exactly a 16-byte fmt chunk
// followed by a data chunk, the layout Decoder expects.
func IsCanonical(chunks []Chunk) bool {
	return len(chunks) == 2 &&
		chunks[0].ID == string(riff.FmtID[:]) && chunks[0].Size == 16 &&
		chunks[1].ID == string(riff.DataFormatID[:])
}
