// SPDX-License-Identifier: EPL-2.0

// Package devicetest provides an in-memory device.Device that records every
// call, for testing code that drives audio hardware.
package devicetest

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/spatial"
)

// Device is a fake output. Set the *Err fields to make the matching call
// fail.
type Device struct {
	OpenErr   error
	BufferErr error
	SourceErr error
	BindErr   error

	mu       sync.Mutex
	open     bool
	opens    int
	closes   int
	listener spatial.Listener
	buffers  []*Buffer
	sources  []*Source
}

var _ device.Device = (*Device)(nil)

func New() *Device {
	return &Device{listener: spatial.DefaultListener()}
}

func (d *Device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return d.OpenErr
	}
	d.open = true
	d.opens++

	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.open = false
	d.closes++

	return nil
}

// IsOpen reports whether Open succeeded without a later Close.
func (d *Device) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.open
}

// Opens and Closes count successful calls.
func (d *Device) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.opens
}

func (d *Device) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.closes
}

func (d *Device) NewBuffer(layout audio.Layout, pcm []byte, sampleRate int) (device.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil, &device.AllocationError{Resource: "buffer", Err: device.ErrClosed}
	}
	if d.BufferErr != nil {
		return nil, &device.AllocationError{Resource: "buffer", Err: d.BufferErr}
	}

	b := &Buffer{
		Layout:     layout,
		PCM:        pcm,
		SampleRate: sampleRate,
		dev:        d,
	}
	d.buffers = append(d.buffers, b)

	return b, nil
}

func (d *Device) NewSource() (device.Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil, &device.AllocationError{Resource: "source", Err: device.ErrClosed}
	}
	if d.SourceErr != nil {
		return nil, &device.AllocationError{Resource: "source", Err: d.SourceErr}
	}

	s := &Source{dev: d, state: device.Initial}
	d.sources = append(d.sources, s)

	return s, nil
}

func (d *Device) SetListener(l spatial.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener = l
}

func (d *Device) Listener() spatial.Listener {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.listener
}

// Buffers returns every buffer ever allocated, deleted ones included.
func (d *Device) Buffers() []*Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]*Buffer(nil), d.buffers...)
}

// Sources returns every source ever allocated, deleted ones included.
func (d *Device) Sources() []*Source {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]*Source(nil), d.sources...)
}

// Live counts buffers and sources that have not been deleted.
func (d *Device) Live() (buffers, sources int) {
	for _, b := range d.Buffers() {
		if !b.Deleted() {
			buffers++
		}
	}
	for _, s := range d.Sources() {
		if !s.Deleted() {
			sources++
		}
	}

	return buffers, sources
}

// Buffer is uploaded PCM held in memory.
type Buffer struct {
	Layout     audio.Layout
	PCM        []byte
	SampleRate int

	dev     *Device
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

func (b *Buffer) Deleted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.deleted
}

// Source records the parameters it was given and the commands it received.
type Source struct {
	dev *Device

	mu      sync.Mutex
	buf     *Buffer
	params  device.Params
	state   device.State
	plays   int
	stops   int
	pauses  int
	deleted bool
}

func (s *Source) Bind(b device.Buffer) error {
	s.dev.mu.Lock()
	bindErr := s.dev.BindErr
	s.dev.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if bindErr != nil {
		return bindErr
	}
	fb, ok := b.(*Buffer)
	if !ok || fb.dev != s.dev {
		return device.ErrForeignBuffer
	}
	if fb.Deleted() {
		return device.ErrDeleted
	}
	s.buf = fb

	return nil
}

func (s *Source) SetPitch(pitch float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Pitch = pitch
}

func (s *Source) SetGain(gain float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Gain = gain
}

func (s *Source) SetLooping(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Looping = loop
}

func (s *Source) SetPosition(pos mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Position = pos
}

func (s *Source) SetVelocity(vel mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Velocity = vel
}

func (s *Source) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plays++
	if s.buf != nil {
		s.state = device.Playing
	}
}

func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stops++
	s.state = device.Stopped
}

func (s *Source) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pauses++
	if s.state == device.Playing {
		s.state = device.Paused
	}
}

func (s *Source) State() device.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Source) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return device.ErrDeleted
	}
	s.deleted = true
	s.buf = nil
	s.state = device.Stopped

	return nil
}

// Finish simulates the bound clip reaching its end on its own.
func (s *Source) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == device.Playing {
		s.state = device.Stopped
	}
}

func (s *Source) Params() device.Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params
}

// Buffer is the currently bound buffer, or nil.
func (s *Source) Buffer() *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf
}

// Plays, Stops and Pauses count the commands received.
func (s *Source) Plays() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plays
}

func (s *Source) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stops
}

func (s *Source) Pauses() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pauses
}

func (s *Source) Deleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleted
}
