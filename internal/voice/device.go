// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/spatial"
)

// Output is the rate and channel count a backend mixes at.
type Output struct {
	SampleRate int
	Channels   int
}

// Player plays a stream of 16-bit little-endian frames. Rewind must drop
// anything buffered and seek the stream back to its start.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	Close() error
}

// Backend is a real audio output.
type Backend interface {
	Open() (Output, error)
	Close() error
	NewPlayer(r io.ReadSeeker) (Player, error)
}

// Device implements device.Device by rendering one Voice per source and
// handing it to a backend Player.
type Device struct {
	backend Backend
	model   spatial.Model

	mu       sync.Mutex
	open     bool
	out      Output
	listener spatial.Listener
	sources  map[*Source]struct{}
}

var _ device.Device = (*Device)(nil)

func NewDevice(b Backend, model spatial.Model) *Device {
	return &Device{
		backend:  b,
		model:    model,
		listener: spatial.DefaultListener(),
		sources:  make(map[*Source]struct{}),
	}
}

// Open is a no-op on an open device.
func (d *Device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.open {
		return nil
	}

	out, err := d.backend.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", device.ErrNoDevice, err)
	}
	d.out = out
	d.open = true

	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil
	}
	d.open = false

	if err := d.backend.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Output reports what the backend negotiated on Open.
func (d *Device) Output() Output {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.out
}

func (d *Device) NewBuffer(layout audio.Layout, pcm []byte, sampleRate int) (device.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil, &device.AllocationError{Resource: "buffer", Err: device.ErrClosed}
	}
	if layout.Channels() == 0 {
		return nil, &device.AllocationError{Resource: "buffer", Err: audio.ErrUnsupportedFormat}
	}

	clip := audio.NewClip(uint8(layout.Channels()), int32(sampleRate), uint8(layout.BitsPerSample()), pcm)

	return &Buffer{clip: clip, owner: d}, nil
}

func (d *Device) NewSource() (device.Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil, &device.AllocationError{Resource: "source", Err: device.ErrClosed}
	}

	s := &Source{
		dev:      d,
		params:   device.DefaultParams(),
		listener: d.listener,
	}
	d.sources[s] = struct{}{}

	return s, nil
}

func (d *Device) SetListener(l spatial.Listener) {
	d.mu.Lock()
	d.listener = l
	live := make([]*Source, 0, len(d.sources))
	for s := range d.sources {
		live = append(live, s)
	}
	d.mu.Unlock()

	for _, s := range live {
		s.setListener(l)
	}
}

func (d *Device) remove(s *Source) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.sources, s)
}

func (d *Device) config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Config{
		SampleRate: d.out.SampleRate,
		Channels:   d.out.Channels,
		Model:      d.model,
	}
}

// Buffer holds uploaded PCM as a clip.
type Buffer struct {
	clip  *audio.Clip
	owner *Device

	mu      sync.Mutex
	deleted bool
}

func (b *Buffer) Delete() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.deleted {
		return device.ErrDeleted
	}
	b.deleted = true

	return nil
}

func (b *Buffer) isDeleted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.deleted
}

// Source pairs a Voice with the backend Player reading it.
type Source struct {
	dev *Device

	mu       sync.Mutex
	params   device.Params
	listener spatial.Listener
	voice    *Voice
	player   Player
	deleted  bool
}

// Bind renders b through a new voice, replacing any previous binding.
func (s *Source) Bind(b device.Buffer) error {
	buf, ok := b.(*Buffer)
	if !ok || buf.owner != s.dev {
		return device.ErrForeignBuffer
	}
	if buf.isDeleted() {
		return device.ErrDeleted
	}

	v, err := New(buf.clip, s.dev.config())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return device.ErrDeleted
	}

	v.SetListener(s.listener)
	s.params.Apply(v)

	p, err := s.dev.backend.NewPlayer(v)
	if err != nil {
		return &device.AllocationError{Resource: "player", Err: err}
	}

	if s.player != nil {
		_ = s.player.Close()
	}
	s.voice, s.player = v, p

	return nil
}

func (s *Source) SetPitch(pitch float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Pitch = pitch
	if s.voice != nil {
		s.voice.SetPitch(pitch)
	}
}

func (s *Source) SetGain(gain float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Gain = gain
	if s.voice != nil {
		s.voice.SetGain(gain)
	}
}

func (s *Source) SetLooping(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Looping = loop
	if s.voice != nil {
		s.voice.SetLooping(loop)
	}
}

func (s *Source) SetPosition(pos mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Position = pos
	if s.voice != nil {
		s.voice.SetPosition(pos)
	}
}

func (s *Source) SetVelocity(vel mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Velocity = vel
	if s.voice != nil {
		s.voice.SetVelocity(vel)
	}
}

func (s *Source) setListener(l spatial.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listener = l
	if s.voice != nil {
		s.voice.SetListener(l)
	}
}

// Play starts the voice. After a Stop or a natural end the player is
// rewound first so stale buffered audio is dropped.
func (s *Source) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.voice == nil || s.deleted {
		return
	}
	if st := s.voice.State(); st == device.Stopped || s.voice.Ended() {
		_ = s.player.Rewind()
	}
	s.voice.Play()
	s.player.Play()
}

func (s *Source) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.voice == nil || s.deleted {
		return
	}
	s.voice.Pause()
	s.player.Pause()
}

func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.voice == nil || s.deleted {
		return
	}
	s.player.Pause()
	s.voice.Stop()
	_ = s.player.Rewind()
}

// State is Playing until the player has drained what the voice rendered,
// even after the voice itself hit the end of the clip.
func (s *Source) State() device.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.voice == nil {
		if s.deleted {
			return device.Stopped
		}
		return device.Initial
	}

	st := s.voice.State()
	if st == device.Stopped && s.voice.Ended() && s.player.IsPlaying() {
		return device.Playing
	}

	return st
}

func (s *Source) Delete() error {
	s.mu.Lock()
	if s.deleted {
		s.mu.Unlock()
		return device.ErrDeleted
	}
	s.deleted = true

	var err error
	if s.player != nil {
		s.player.Pause()
		err = s.player.Close()
	}
	s.voice, s.player = nil, nil
	s.mu.Unlock()

	s.dev.remove(s)

	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
