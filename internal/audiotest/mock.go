// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixtures shared by tests: synthetic sample
// sources and canonical WAVE byte builders. It does not import the audio
// package so audio's own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// MockSource generates frames from a Waveform. It satisfies audio.Source.
type MockSource struct {
	rate     int
	channels int
	frames   int
	next     int
	wave     Waveform

	// ReadErr, when set, is returned by the next ReadSamples call.
	ReadErr error
	Closed  bool
}

func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		rate:     sampleRate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		t := float64(i) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewChannelSource fills channel ch with values[ch] on every frame.
func NewChannelSource(sampleRate, frames int, values ...float32) *MockSource {
	return NewMockSource(sampleRate, len(values), frames, func(_, ch int) float32 { return values[ch] })
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset starts generation over from frame 0.
func (m *MockSource) Reset() { m.next = 0 }

// Remaining is the number of frames not yet generated.
func (m *MockSource) Remaining() int { return m.frames - m.next }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if err := m.ReadErr; err != nil {
		m.ReadErr = nil
		return 0, err
	}
	if m.next >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.next)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.wave(m.next+f, ch)
		}
	}
	m.next += n

	if m.next >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}
