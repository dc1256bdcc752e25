// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// WAV describes a canonical 44-byte-header WAVE file. Zero tag fields
// fall back to the correct literals; set them to build malformed files.
type WAV struct {
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
	Data          []byte

	// DataSize overrides the declared payload length when non-nil.
	DataSize *int32

	RIFF, WAVE, DataTag string
}

func tag(s, def string) []byte {
	if s == "" {
		s = def
	}
	b := make([]byte, 4)
	copy(b, s)
	return b
}

// Bytes encodes w.
func (w WAV) Bytes() []byte {
	size := int32(len(w.Data))
	if w.DataSize != nil {
		size = *w.DataSize
	}
	blockAlign := w.Channels * w.BitsPerSample / 8

	var buf bytes.Buffer
	buf.Write(tag(w.RIFF, "RIFF"))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(w.Data)))
	buf.Write(tag(w.WAVE, "WAVE"))
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, w.Channels)
	_ = binary.Write(&buf, binary.LittleEndian, w.SampleRate)
	_ = binary.Write(&buf, binary.LittleEndian, w.SampleRate*uint32(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(&buf, binary.LittleEndian, w.BitsPerSample)
	buf.Write(tag(w.DataTag, "data"))
	_ = binary.Write(&buf, binary.LittleEndian, size)
	buf.Write(w.Data)

	return buf.Bytes()
}

// WriteFile stores w under t.TempDir and returns the path.
func (w WAV) WriteFile(t testing.TB, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, w.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// Size returns a pointer to n, for WAV.DataSize.
func Size(n int32) *int32 { return &n }

// PCM16 packs samples as signed 16-bit little-endian.
func PCM16(samples ...int16) []byte {
	b := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}
	return b
}

// Ramp returns n bytes counting up from 0, wrapping at 256.
func Ramp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
