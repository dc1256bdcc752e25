// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmgr/audio"
)

// mockOggVorbisReader stands in for oggvorbis.Reader. Like the real
// reader it returns a count of values, not frames.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := len(buf) - len(buf)%m.channels
	n = copy(buf[:n], m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func sample16(data []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(data[i*2:]))
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("This is not Ogg Vorbis data"), nil} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		want     []int16
	}{
		{
			name:     "mono",
			channels: 1,
			samples:  []float32{0, 1, -1, 0.5},
			want:     []int16{0, 32767, -32767, 16383},
		},
		{
			name:     "stereo",
			channels: 2,
			samples:  []float32{1, -1, 0, 0.5},
			want:     []int16{32767, -32767, 0, 16383},
		},
		{
			name:     "clipped",
			channels: 1,
			samples:  []float32{2, -2},
			want:     []int16{32767, -32767},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockOggVorbisReader{sampleRate: 48000, channels: tt.channels, samples: tt.samples}
			clip, err := decode(m)
			if err != nil {
				t.Fatalf("decode() error = %v", err)
			}

			if int(clip.Format.Channels) != tt.channels || clip.Format.SampleRate != 48000 || clip.Format.BitsPerSample != 16 {
				t.Errorf("Format = %v", clip.Format)
			}
			if len(clip.Data) != len(tt.want)*2 {
				t.Fatalf("len(Data) = %d, want %d", len(clip.Data), len(tt.want)*2)
			}
			for i, want := range tt.want {
				if got := sample16(clip.Data, i); got != want {
					t.Errorf("sample %d = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestDecode_Surround(t *testing.T) {
	t.Parallel()

	// four channels: even ones feed the left side, odd ones the right
	m := &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   4,
		samples:    []float32{0.5, 0, 0.5, 0, 0, -0.5, 0, -0.5},
	}

	clip, err := decode(m)
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	if clip.Format.Channels != 2 {
		t.Fatalf("Channels = %d, want 2", clip.Format.Channels)
	}

	want := []int16{16383, 0, 0, -16383}
	for i, w := range want {
		if got := sample16(clip.Data, i); got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestDecode_LongStream(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2*10000)
	m := &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples}

	clip, err := decode(m)
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	if clip.Format.Frames() != 10000 {
		t.Errorf("Frames() = %d, want 10000", clip.Format.Frames())
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	errRead := errors.New("read failed")

	tests := []struct {
		name string
		m    *mockOggVorbisReader
		want error
	}{
		{
			name: "empty",
			m:    &mockOggVorbisReader{sampleRate: 44100, channels: 2},
			want: audio.ErrEmptyClip,
		},
		{
			name: "read error",
			m:    &mockOggVorbisReader{sampleRate: 44100, channels: 1, samples: []float32{1}, err: errRead},
			want: errRead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := decode(tt.m)
			if !errors.Is(err, tt.want) {
				t.Errorf("decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	samples := make([]float32, 44100*2)
	for i := range samples {
		samples[i] = float32(i%200)/100 - 1
	}

	b.ReportAllocs()
	for b.Loop() {
		m := &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples}
		_, _ = decode(m)
	}
}
