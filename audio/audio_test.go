// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
)

// stubDecoder returns its clip after reading the whole input.
type stubDecoder struct {
	clip *Clip
	err  error
}

func (d stubDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}

	return d.clip, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	dec := stubDecoder{clip: NewClip(1, 8000, 8, []byte{128})}
	r.Register("WAV", dec)

	for _, key := range []string{"wav", "WAV", ".wav", ".Wav"} {
		got, ok := r.Get(key)
		if !ok {
			t.Errorf("Get(%q) not found", key)
			continue
		}
		if got.(stubDecoder).clip != dec.clip {
			t.Errorf("Get(%q) returned a different decoder", key)
		}
	}

	if _, ok := r.Get("mp3"); ok {
		t.Error(`Get("mp3") found a decoder that was never registered`)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := stubDecoder{clip: NewClip(1, 8000, 8, []byte{1})}
	second := stubDecoder{clip: NewClip(1, 8000, 8, []byte{2})}
	r.Register("ogg", first)
	r.Register(".OGG", second)

	got, _ := r.Get("ogg")
	if got.(stubDecoder).clip != second.clip {
		t.Error("second registration did not replace the first")
	}
	if n := len(r.Formats()); n != 1 {
		t.Errorf("len(Formats()) = %d, want 1", n)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("wav", stubDecoder{})
	r.Register("aif", stubDecoder{})

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "sounds/boom.wav"},
		{path: "BOOM.WAV"},
		{path: "/tmp/x.aif"},
		{path: "music.flac", wantErr: true},
		{path: "noext", wantErr: true},
		{path: "dir.wav/file", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			_, err := r.Lookup(tt.path)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("Lookup(%q) error = %v, want ErrUnknownFormat", tt.path, err)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if got := r.Formats(); len(got) != 0 {
		t.Errorf("empty registry Formats() = %v", got)
	}

	for _, k := range []string{"ogg", ".MP3", "wav", "aiff"} {
		r.Register(k, stubDecoder{})
	}

	want := []string{"aiff", "mp3", "ogg", "wav"}
	if got := r.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			key := fmt.Sprintf("fmt%d", i%4)
			r.Register(key, stubDecoder{})
			_, _ = r.Get(key)
			_ = r.Formats()
		}(i)
	}
	wg.Wait()

	if n := len(r.Formats()); n != 4 {
		t.Errorf("len(Formats()) = %d, want 4", n)
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.raw")
	if err := os.WriteFile(path, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}

	clip := NewClip(2, 44100, 16, []byte{0, 0, 0, 0})
	errBroken := errors.New("broken")

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		got, err := DecodeFile(stubDecoder{clip: clip}, path)
		if err != nil || got != clip {
			t.Errorf("DecodeFile() = %v, %v", got, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeFile(stubDecoder{clip: clip}, filepath.Join(dir, "nope.raw"))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("DecodeFile() error = %v, want ErrFileNotFound", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("DecodeFile() error = %v, want os.ErrNotExist in chain", err)
		}
	})

	t.Run("decoder error", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeFile(stubDecoder{err: errBroken}, path)
		if !errors.Is(err, errBroken) {
			t.Errorf("DecodeFile() error = %v, want %v", err, errBroken)
		}
		if errors.Is(err, ErrFileNotFound) {
			t.Error("decoder failure reported as ErrFileNotFound")
		}
	})
}

func BenchmarkRegistry_Get(b *testing.B) {
	r := NewRegistry()
	r.Register("wav", stubDecoder{})

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Get("wav")
	}
}

func BenchmarkRegistry_Lookup(b *testing.B) {
	r := NewRegistry()
	r.Register("wav", stubDecoder{})

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Lookup("sounds/explosion.WAV")
	}
}
