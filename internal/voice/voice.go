// SPDX-License-Identifier: EPL-2.0

// Package voice renders clips into 16-bit little-endian PCM streams for
// software-mixed outputs, and implements device.Device on top of any
// backend that can play an io.Reader.
package voice

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/spatial"
	"github.com/ik5/audmgr/utils"
)

var (
	ErrInvalidWhence = errors.New("voice: invalid whence")
	ErrNegativeSeek  = errors.New("voice: negative position")
)

// Config is the output a Voice renders for.
type Config struct {
	SampleRate int
	Channels   int
	Model      spatial.Model
}

// Voice plays one clip. It is an io.ReadSeeker over the rendered output:
// the clip is converted to the output channel count, resampled to the
// output rate with pitch and doppler folded into the ratio, then scaled
// by gain, distance attenuation and pan.
//
// Read is called from the output's goroutine; every other method may be
// called concurrently with it.
type Voice struct {
	mu sync.Mutex

	clip *audio.ClipSource
	rs   *audio.Resampler
	rate int
	cfg  Config

	state  device.State
	ended  bool
	outPos int64

	pitch    float32
	gain     float32
	pos      mgl32.Vec3
	vel      mgl32.Vec3
	listener spatial.Listener

	gainL, gainR float32

	fbuf []float32
}

// New builds a voice for clip. It fails when the clip has no device layout.
func New(clip *audio.Clip, cfg Config) (*Voice, error) {
	src, err := audio.NewClipSource(clip)
	if err != nil {
		return nil, err
	}
	if cfg.Channels != 1 {
		cfg.Channels = 2
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = max(src.SampleRate(), 1)
	}

	var mixed audio.Source
	if cfg.Channels == 1 {
		mixed = audio.NewMonoMixer(src)
	} else {
		mixed = audio.NewStereoMixer(src)
	}

	v := &Voice{
		clip:     src,
		rs:       audio.NewResampler(mixed, cfg.SampleRate),
		rate:     src.SampleRate(),
		cfg:      cfg,
		state:    device.Initial,
		pitch:    1,
		gain:     1,
		listener: spatial.DefaultListener(),
	}
	v.refresh()

	return v, nil
}

// refresh recomputes the mix from the spatial parameters.
// Callers hold v.mu.
func (v *Voice) refresh() {
	mix := v.cfg.Model.Apply(v.listener, v.pos, v.vel)

	pitch := v.pitch
	if pitch <= 0 {
		pitch = 1
	}
	v.rs.Retune(max(1, int(float64(v.rate)*float64(pitch*mix.Pitch))))

	g := v.gain * mix.Gain
	if v.cfg.Channels == 1 {
		v.gainL, v.gainR = g, g
		return
	}
	l, r := spatial.PanGains(mix.Pan)
	v.gainL, v.gainR = g*l, g*r
}

func (v *Voice) SetPitch(pitch float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pitch = pitch
	v.refresh()
}

func (v *Voice) SetGain(gain float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.gain = max(gain, 0)
	v.refresh()
}

func (v *Voice) SetLooping(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clip.SetLooping(loop)
}

func (v *Voice) SetPosition(pos mgl32.Vec3) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pos = pos
	v.refresh()
}

func (v *Voice) SetVelocity(vel mgl32.Vec3) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.vel = vel
	v.refresh()
}

func (v *Voice) SetListener(l spatial.Listener) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.listener = l
	v.refresh()
}

// Gains reports the current left and right output gains. Mono outputs
// report the same value twice.
func (v *Voice) Gains() (left, right float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.gainL, v.gainR
}

// Ratio reports source frames consumed per output frame.
func (v *Voice) Ratio() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rs.Ratio()
}

// Play starts or resumes the voice. A voice that ran off the end of its
// clip starts over.
func (v *Voice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == device.Playing {
		return
	}
	if v.ended {
		v.rewind()
	}
	v.state = device.Playing
}

func (v *Voice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == device.Playing {
		v.state = device.Paused
	}
}

// Stop halts the voice and rewinds it to the first frame.
func (v *Voice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = device.Stopped
	v.rewind()
}

func (v *Voice) State() device.State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// Ended reports whether a non-looping clip played through to its end.
func (v *Voice) Ended() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.ended
}

func (v *Voice) rewind() {
	v.clip.SeekFrame(0)
	v.rs.Reset()
	v.outPos = 0
	v.ended = false
}

func (v *Voice) frameBytes() int { return v.cfg.Channels * 2 }

// Read renders whole output frames into p.
// While the voice is not playing it renders silence. Once a non-looping
// clip is exhausted Read returns io.EOF and the voice reports Stopped.
func (v *Voice) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fb := v.frameBytes()
	frames := len(p) / fb
	if frames == 0 {
		return 0, nil
	}
	if v.ended {
		return 0, io.EOF
	}
	if v.state != device.Playing {
		clear(p[:frames*fb])
		return frames * fb, nil
	}

	need := frames * v.cfg.Channels
	if cap(v.fbuf) < need {
		v.fbuf = make([]float32, need)
	}
	buf := v.fbuf[:need]

	n, err := v.rs.ReadSamples(buf)
	if err != nil && err != io.EOF {
		return 0, err
	}

	for i, s := range buf[:n] {
		g := v.gainL
		if v.cfg.Channels == 2 && i&1 == 1 {
			g = v.gainR
		}
		binary.LittleEndian.PutUint16(p[i*2:], uint16(utils.Float32ToInt16(s*g)))
	}
	v.outPos += int64(n / v.cfg.Channels)

	if err == io.EOF {
		v.ended = true
		v.state = device.Stopped
		return n * 2, io.EOF
	}

	return n * 2, nil
}

// Seek moves the output position. Offsets are in bytes of rendered
// output and are rounded down to a whole frame.
func (v *Voice) Seek(offset int64, whence int) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fb := int64(v.frameBytes())
	ratio := v.rs.Ratio()

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = v.outPos*fb + offset
	case io.SeekEnd:
		total := int64(float64(v.clip.Frames()) / ratio)
		abs = total*fb + offset
	default:
		return 0, ErrInvalidWhence
	}
	if abs < 0 {
		return 0, ErrNegativeSeek
	}

	out := abs / fb
	v.clip.SeekFrame(int(float64(out) * ratio))
	v.rs.Reset()
	v.outPos = out
	v.ended = false

	return out * fb, nil
}
