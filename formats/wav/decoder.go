// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audmgr/audio"
)

// HeaderSize is the length of a canonical WAVE header.
const HeaderSize = 44

// field is one fixed-size slot of the canonical header. A non-empty tag
// must match the bytes read.
type field struct {
	name string
	size int
	tag  string
}

var canonical = [...]field{
	{"riff", 4, "RIFF"},
	{"file size", 4, ""},
	{"wave", 4, "WAVE"},
	{"fmt marker", 4, ""},
	{"fmt size", 4, ""},
	{"audio format", 2, ""},
	{"channels", 2, ""},
	{"sample rate", 4, ""},
	{"byte rate", 4, ""},
	{"block align", 2, ""},
	{"bits per sample", 2, ""},
	{"data", 4, "data"},
	{"data size", 4, ""},
}

// Byte offsets of the fields that are kept.
const (
	offChannels   = 22
	offSampleRate = 24
	offBits       = 34
	offDataSize   = 40
)

// Decoder reads canonical WAVE files: a 44-byte header with the fmt chunk
// immediately followed by the data chunk. Files with any other chunk in
// between are not detected and will misparse; use ChunkDecoder for those.
//
// The (channels, bits) pair is not validated here. Callers check it with
// Format.Layout before handing the data to a device. Neither is the
// sample rate: a zero or negative rate decodes, and sound.Manager refuses
// it at load time with audio.ErrInvalidRate.
type Decoder struct{}

// Decode reads the header fields in order, stopping at the first one that
// is short or has the wrong tag, then reads DataSize bytes of payload from
// right after the header.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Clip, error) {
	var hdr [HeaderSize]byte

	off := 0
	for _, f := range canonical {
		b := hdr[off : off+f.size]
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, &HeaderError{Field: f.name, Err: err}
		}
		if f.tag != "" && !bytes.Equal(b, []byte(f.tag)) {
			return nil, &HeaderError{
				Field: f.name,
				Err:   fmt.Errorf("%w: got %q, want %q", ErrTagMismatch, b, f.tag),
			}
		}
		off += f.size
	}

	format := audio.Format{
		Channels:      uint8(binary.LittleEndian.Uint16(hdr[offChannels:])),
		SampleRate:    int32(binary.LittleEndian.Uint32(hdr[offSampleRate:])),
		BitsPerSample: uint8(binary.LittleEndian.Uint16(hdr[offBits:])),
		DataSize:      int32(binary.LittleEndian.Uint32(hdr[offDataSize:])),
	}
	if format.DataSize < 0 {
		return nil, &HeaderError{Field: "data size", Err: ErrNegativeDataSize}
	}

	avail, err := remaining(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if format.DataSize > 0 && avail == 0 {
		return nil, &HeaderError{Field: "data", Err: io.ErrUnexpectedEOF}
	}
	if avail < int64(format.DataSize) {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrTruncatedData, avail, format.DataSize)
	}

	data := make([]byte, format.DataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}

	return &audio.Clip{Format: format, Data: data}, nil
}

// remaining reports the bytes between the cursor and the end of r,
// leaving the cursor where it was.
func remaining(r io.Seeker) (int64, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}

	return end - cur, nil
}

// Decode reads the canonical WAVE file at path.
// A file that cannot be opened fails with audio.ErrFileNotFound.
func Decode(path string) (*audio.Clip, error) {
	return audio.DecodeFile(Decoder{}, path)
}
