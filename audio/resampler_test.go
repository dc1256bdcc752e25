// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audmgr/internal/audiotest"
)

// drain reads src to io.EOF in chunks of size samples.
func drain(t testing.TB, src Source, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if n == 0 {
			t.Fatal("ReadSamples() made no progress")
		}
	}
}

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if want := 44100.0 / 8000.0; r.Ratio() != want {
		t.Errorf("Ratio() = %v, want %v", r.Ratio(), want)
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	const frames = 100
	src := audiotest.NewMockSource(8000, 1, frames, func(i, _ int) float32 {
		return float32(i) / frames
	})

	out := drain(t, NewResampler(src, 8000), 64)
	if len(out) != frames {
		t.Fatalf("got %d frames, want %d", len(out), frames)
	}
	for i, v := range out {
		if !near(v, float32(i)/frames, 1e-6) {
			t.Errorf("frame %d = %v, want %v", i, v, float32(i)/frames)
		}
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		want     int
	}{
		{name: "downsample", from: 44100, to: 8000, frames: 44100, want: 8000},
		{name: "upsample", from: 8000, to: 16000, frames: 1000, want: 2000},
		{name: "extreme down", from: 96000, to: 8000, frames: 9600, want: 800},
		{name: "extreme up", from: 8000, to: 96000, frames: 100, want: 1200},
		{name: "single frame", from: 8000, to: 8000, frames: 1, want: 1},
		{name: "three frames", from: 22050, to: 22050, frames: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.from, 1, tt.frames, 440)
			out := drain(t, NewResampler(src, tt.to), 4096)

			if d := len(out) - tt.want; d < -1 || d > 1 {
				t.Errorf("got %d frames, want %d±1", len(out), tt.want)
			}
			for i, v := range out {
				if v < -1.2 || v > 1.2 {
					t.Fatalf("frame %d = %v, out of range", i, v)
				}
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	for _, to := range []int{8000, 44100, 96000} {
		src := audiotest.NewChannelSource(44100, 2000, 0.3, -0.7)
		out := drain(t, NewResampler(src, to), 512)

		if len(out)%2 != 0 {
			t.Fatalf("to %d: odd sample count %d", to, len(out))
		}
		for f := 0; f < len(out); f += 2 {
			if !near(out[f], 0.3, 1e-5) || !near(out[f+1], -0.7, 1e-5) {
				t.Fatalf("to %d: frame %d = (%v, %v)", to, f/2, out[f], out[f+1])
			}
		}
	}
}

func TestResampler_EOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 100), 8000)
	if out := drain(t, r, 1024); len(out) == 0 {
		t.Fatal("no samples before EOF")
	}

	buf := make([]float32, 16)
	for range 3 {
		n, err := r.ReadSamples(buf)
		if n != 0 || err != io.EOF {
			t.Errorf("after EOF ReadSamples() = %d, %v; want 0, io.EOF", n, err)
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 0), 8000)
	n, err := r.ReadSamples(make([]float32, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)
	if _, err := r.ReadSamples(make([]float32, 7)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	src := audiotest.NewSilentSource(8000, 1, 100)
	src.ReadErr = errBoom

	r := NewResampler(src, 8000)
	if _, err := r.ReadSamples(make([]float32, 10)); !errors.Is(err, errBoom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errBoom)
	}
}

func TestResampler_Retune(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(22050, 1, 22050)
	r := NewResampler(src, 22050)

	r.Retune(44100)
	if r.Ratio() != 2 {
		t.Errorf("Ratio() = %v, want 2", r.Ratio())
	}
	if out := drain(t, r, 1000); len(out) < 11024 || len(out) > 11026 {
		t.Errorf("double rate produced %d frames, want about 11025", len(out))
	}

	r.Retune(0)
	if r.Ratio() != 1 {
		t.Errorf("Retune(0) Ratio() = %v, want 1", r.Ratio())
	}
}

func TestResampler_Reset(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 50, 0.25)
	r := NewResampler(src, 8000)

	first := drain(t, r, 16)
	src.Reset()
	r.Reset()
	second := drain(t, r, 16)

	if len(first) != 50 || len(second) != 50 {
		t.Errorf("got %d then %d frames, want 50 each", len(first), len(second))
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed {
		t.Error("Close() did not reach the source")
	}
}

func TestResampler_MinimalAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := audiotest.NewSineSource(44100, 2, 1<<20, 440)
	r := NewResampler(src, 8000)
	buf := make([]float32, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = r.ReadSamples(buf)
	})
	if allocs > 0 {
		t.Errorf("ReadSamples() allocated %v times, want 0", allocs)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, math.MaxInt32, 440)
	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.ReadSamples(buf)
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	src := audiotest.NewSineSource(8000, 1, math.MaxInt32, 440)
	r := NewResampler(src, 48000)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.ReadSamples(buf)
	}
}
