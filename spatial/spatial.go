// SPDX-License-Identifier: EPL-2.0

// Package spatial computes how a positioned sound is heard by a listener:
// distance attenuation, stereo pan and doppler pitch shift.
//
// The defaults follow the OpenAL 1.1 model: inverse distance clamped with
// a reference distance and rolloff of 1, a listener at the origin looking
// down -Z, a speed of sound of 343.3 units/s and a doppler factor of 1.
package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Listener is the point sounds are heard from.
type Listener struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Forward  mgl32.Vec3
	Up       mgl32.Vec3
	Gain     float32
}

// DefaultListener sits at the origin, looking down -Z with +Y up.
func DefaultListener() Listener {
	return Listener{
		Forward: mgl32.Vec3{0, 0, -1},
		Up:      mgl32.Vec3{0, 1, 0},
		Gain:    1,
	}
}

// right returns the listener's unit right axis, or +X when Forward and Up
// are degenerate.
func (l Listener) right() mgl32.Vec3 {
	r := l.Forward.Cross(l.Up)
	if r.LenSqr() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}

	return r.Normalize()
}

// Pan places pos on the listener's left/right axis: -1 is hard left,
// 1 is hard right and 0 is centred (also used when pos is on the listener).
func (l Listener) Pan(pos mgl32.Vec3) float32 {
	dir := pos.Sub(l.Position)
	if dir.LenSqr() == 0 {
		return 0
	}

	return mgl32.Clamp(dir.Normalize().Dot(l.right()), -1, 1)
}

// Model holds the distance and doppler parameters.
type Model struct {
	ReferenceDistance float32
	RolloffFactor     float32
	SpeedOfSound      float32
	DopplerFactor     float32
}

func DefaultModel() Model {
	return Model{
		ReferenceDistance: 1,
		RolloffFactor:     1,
		SpeedOfSound:      343.3,
		DopplerFactor:     1,
	}
}

// Attenuation is the inverse-distance-clamped gain for a source dist
// units away. Distances inside the reference distance are not boosted.
func (m Model) Attenuation(dist float32) float32 {
	ref := m.ReferenceDistance
	if ref <= 0 {
		return 1
	}
	dist = max(dist, ref)

	return ref / (ref + m.RolloffFactor*(dist-ref))
}

// Doppler returns the pitch factor heard by l for a source at pos moving
// with vel. The result is clamped to [0.5, 2].
func (m Model) Doppler(l Listener, pos, vel mgl32.Vec3) float32 {
	if m.DopplerFactor == 0 || m.SpeedOfSound <= 0 {
		return 1
	}

	sl := l.Position.Sub(pos)
	mag := sl.Len()
	if mag == 0 {
		return 1
	}

	limit := m.SpeedOfSound / m.DopplerFactor
	vls := min(sl.Dot(l.Velocity)/mag, limit)
	vss := min(sl.Dot(vel)/mag, limit)

	den := m.SpeedOfSound - m.DopplerFactor*vss
	if den <= 0 {
		return 2
	}

	return mgl32.Clamp((m.SpeedOfSound-m.DopplerFactor*vls)/den, 0.5, 2)
}

// Mix is what a source sounds like from the listener's point of view.
type Mix struct {
	Gain  float32
	Pan   float32
	Pitch float32
}

// Apply combines attenuation, pan and doppler for a source.
func (m Model) Apply(l Listener, pos, vel mgl32.Vec3) Mix {
	return Mix{
		Gain:  l.Gain * m.Attenuation(pos.Sub(l.Position).Len()),
		Pan:   l.Pan(pos),
		Pitch: m.Doppler(l, pos, vel),
	}
}

// PanGains splits pan into equal-power left and right gains.
func PanGains(pan float32) (left, right float32) {
	angle := float64(mgl32.Clamp(pan, -1, 1)+1) * math.Pi / 4

	return float32(math.Cos(angle)), float32(math.Sin(angle))
}
