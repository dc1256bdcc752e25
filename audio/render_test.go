// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/audmgr/internal/audiotest"
)

func TestRender16(t *testing.T) {
	t.Parallel()

	src := audiotest.NewChannelSource(11025, 300, 0.5, -1)
	clip, err := Render16(src, 64)
	if err != nil {
		t.Fatalf("Render16() error = %v", err)
	}

	want := Format{Channels: 2, SampleRate: 11025, BitsPerSample: 16, DataSize: 1200}
	if clip.Format != want {
		t.Errorf("Format = %v, want %v", clip.Format, want)
	}

	l := int16(binary.LittleEndian.Uint16(clip.Data[1196:]))
	r := int16(binary.LittleEndian.Uint16(clip.Data[1198:]))
	if l != 16383 || r != -32767 {
		t.Errorf("last frame = (%d, %d), want (16383, -32767)", l, r)
	}
}

func TestRender16_OddBufSize(t *testing.T) {
	t.Parallel()

	// a chunk that is not a whole number of frames is rounded down
	clip, err := Render16(audiotest.NewSilentSource(8000, 2, 5), 3)
	if err != nil {
		t.Fatalf("Render16() error = %v", err)
	}
	if clip.Format.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", clip.Format.Frames())
	}

	clip, err = Render16(audiotest.NewSilentSource(8000, 1, 5000), 0)
	if err != nil || clip.Format.Frames() != 5000 {
		t.Errorf("default chunk: %v, %v", clip, err)
	}
}

func TestRender16_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	failing := audiotest.NewSilentSource(8000, 1, 10)
	failing.ReadErr = errBoom

	tests := []struct {
		name string
		src  Source
		want error
	}{
		{name: "too many channels", src: audiotest.NewSilentSource(8000, 3, 10), want: ErrUnsupportedFormat},
		{name: "empty", src: audiotest.NewSilentSource(8000, 1, 0), want: ErrEmptyClip},
		{name: "read error", src: failing, want: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Render16(tt.src, 16); !errors.Is(err, tt.want) {
				t.Errorf("Render16() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	in := NewClip(1, 8000, 8, make([]byte, 800))
	for i := range in.Data {
		in.Data[i] = 192
	}

	out, err := Convert(in, 16000, 2)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if out.Format.Channels != 2 || out.Format.SampleRate != 16000 || out.Format.BitsPerSample != 16 {
		t.Errorf("Format = %v", out.Format)
	}
	if d := out.Format.Frames() - 1600; d < -1 || d > 1 {
		t.Errorf("Frames() = %d, want about 1600", out.Format.Frames())
	}
	if d := out.Format.Duration() - in.Format.Duration(); d < -1e6 || d > 1e6 {
		t.Errorf("duration changed by %v", d)
	}

	v := int16(binary.LittleEndian.Uint16(out.Data[40:]))
	if v != 16383 {
		t.Errorf("sample = %d, want 16383", v)
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Convert(NewClip(3, 8000, 16, make([]byte, 12)), 8000, 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Convert(3 ch) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Convert(NewClip(1, 8000, 16, make([]byte, 12)), 8000, 5); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Convert(to 5 ch) error = %v, want ErrUnsupportedFormat", err)
	}
	for _, rate := range []int{0, -1, -8000} {
		clip, err := Convert(NewClip(1, 8000, 8, make([]byte, 64)), rate, 1)
		if !errors.Is(err, ErrInvalidRate) || clip != nil {
			t.Errorf("Convert(%d Hz) = %v, %v; want nil, ErrInvalidRate", rate, clip, err)
		}
	}
}

func BenchmarkConvert(b *testing.B) {
	in := NewClip(2, 44100, 16, make([]byte, 44100*4))

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Convert(in, 22050, 1)
	}
}
