// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/spatial"
)

// Device is a process-wide audio output that hands out buffers and sources.
type Device interface {
	// Open acquires the output. It fails with ErrNoDevice when no output
	// is available.
	Open() error
	Close() error

	// NewBuffer uploads pcm, laid out as layout, to the device.
	NewBuffer(layout audio.Layout, pcm []byte, sampleRate int) (Buffer, error)
	NewSource() (Source, error)

	SetListener(l spatial.Listener)
}

// Buffer is uploaded PCM data.
type Buffer interface {
	Delete() error
}

// Source is a playback unit bound to a buffer.
// Play, Stop and Pause are fire-and-forget; State reports what the device
// is actually doing.
type Source interface {
	Tunable

	Bind(b Buffer) error

	Play()
	Stop()
	Pause()
	State() State

	Delete() error
}

// Tunable is the per-source parameter surface.
type Tunable interface {
	SetPitch(pitch float32)
	SetGain(gain float32)
	SetLooping(loop bool)
	SetPosition(pos mgl32.Vec3)
	SetVelocity(vel mgl32.Vec3)
}

// State of a source as reported by the device.
type State uint8

const (
	Initial State = iota
	Playing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Initial:
		return "initial"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Params are the per-source settings applied when a source is bound.
type Params struct {
	Looping  bool
	Pitch    float32
	Gain     float32
	Position mgl32.Vec3
	Velocity mgl32.Vec3
}

// DefaultParams loops at unit pitch and gain, at rest on the origin.
func DefaultParams() Params {
	return Params{
		Looping: true,
		Pitch:   1,
		Gain:    1,
	}
}

// Apply pushes every field of p to t.
func (p Params) Apply(t Tunable) {
	t.SetLooping(p.Looping)
	t.SetPitch(p.Pitch)
	t.SetGain(p.Gain)
	t.SetPosition(p.Position)
	t.SetVelocity(p.Velocity)
}
