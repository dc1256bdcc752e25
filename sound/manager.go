// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/spatial"
)

// resource is one loaded sound: its uploaded buffer, the source bound to
// it and the state last seen for it.
type resource struct {
	format audio.Format
	params device.Params
	state  device.State

	buf device.Buffer
	src device.Source
}

// release deletes the source before the buffer it is bound to. Either
// may be nil after a partial load.
func (r *resource) release() error {
	var errs []error
	if r.src != nil {
		if err := r.src.Delete(); err != nil {
			errs = append(errs, fmt.Errorf("delete source: %w", err))
		}
		r.src = nil
	}
	if r.buf != nil {
		if err := r.buf.Delete(); err != nil {
			errs = append(errs, fmt.Errorf("delete buffer: %w", err))
		}
		r.buf = nil
	}

	return errors.Join(errs...)
}

// Manager owns every sound loaded on a device, keyed by file path.
//
// Play, Stop and Pause only issue a device command when the cached state
// calls for it. The cache follows the device through Update, which is
// expected once per frame; that is the only way a sound that ends on its
// own is seen as stopped.
//
// A Manager is safe for concurrent use.
type Manager struct {
	dev    device.Device
	reg    *audio.Registry
	params device.Params

	mu     sync.Mutex
	open   bool
	sounds map[string]*resource
}

func NewManager(dev device.Device, opts ...Option) *Manager {
	m := &Manager{
		dev:    dev,
		params: device.DefaultParams(),
		sounds: make(map[string]*resource),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.reg == nil {
		m.reg = DefaultRegistry()
	}

	return m
}

// Initialise opens the device. Any failure matches device.ErrNoDevice;
// the manager cannot be used without a device.
func (m *Manager) Initialise() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return ErrAlreadyInitialised
	}

	if err := m.dev.Open(); err != nil {
		if !errors.Is(err, device.ErrNoDevice) {
			err = fmt.Errorf("%w: %w", device.ErrNoDevice, err)
		}
		Logger().Warn("audio device unavailable", slog.Any("err", err))
		return err
	}
	m.open = true
	Logger().Info("audio device open")

	return nil
}

// Load registers the sound at path and reports whether it did. It returns
// false for a path that is already loaded, without touching the device,
// and for any failure, which is logged.
func (m *Manager) Load(path string) bool {
	err := m.TryLoad(path)
	if errors.Is(err, ErrAlreadyLoaded) {
		return false
	}
	if err != nil {
		Logger().Warn("sound not loaded", slog.String("path", path), slog.Any("err", err))
		return false
	}

	return true
}

// TryLoad is Load returning the reason for a failure. Nothing is
// registered or left allocated when it fails, so the same path can be
// retried.
func (m *Manager) TryLoad(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotInitialised
	}
	if _, ok := m.sounds[path]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, path)
	}

	r, err := m.acquire(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	m.sounds[path] = r

	Logger().Info("sound loaded",
		slog.String("path", path),
		slog.String("format", r.format.String()))

	return nil
}

// acquire decodes path and creates its buffer and source. On error every
// handle created so far is deleted again.
func (m *Manager) acquire(path string) (_ *resource, err error) {
	dec, err := m.reg.Lookup(path)
	if err != nil {
		return nil, err
	}
	clip, err := audio.DecodeFile(dec, path)
	if err != nil {
		return nil, err
	}
	layout, err := clip.Format.Layout()
	if err != nil {
		return nil, err
	}
	if clip.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", audio.ErrInvalidRate, clip.Format.SampleRate)
	}

	r := &resource{
		format: clip.Format,
		params: m.params,
		state:  device.Initial,
	}
	defer func() {
		if err == nil {
			return
		}
		if rerr := r.release(); rerr != nil {
			Logger().Warn("release after failed load",
				slog.String("path", path), slog.Any("err", rerr))
		}
	}()

	r.buf, err = m.dev.NewBuffer(layout, clip.Data, int(clip.Format.SampleRate))
	if err != nil {
		return nil, err
	}
	r.src, err = m.dev.NewSource()
	if err != nil {
		return nil, err
	}
	if err = r.src.Bind(r.buf); err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	r.params.Apply(r.src)

	return r, nil
}

// Unload releases one sound. It reports false when path is not loaded.
func (m *Manager) Unload(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok {
		return false, nil
	}
	delete(m.sounds, path)

	if err := r.release(); err != nil {
		return true, fmt.Errorf("unload %s: %w", path, err)
	}

	return true, nil
}

// Play moves the sound to pos and starts it unless it is already playing.
// A playing sound is not restarted. Unknown paths are ignored.
func (m *Manager) Play(path string, pos mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok {
		return
	}

	r.params.Position = pos
	r.src.SetPosition(pos)

	if r.state == device.Playing {
		return
	}
	r.src.Play()
	r.state = device.Playing
	Logger().Debug("play", slog.String("path", path))
}

// Stop stops a playing sound. Anything else is ignored.
func (m *Manager) Stop(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok || r.state != device.Playing {
		return
	}
	r.src.Stop()
	r.state = device.Stopped
	Logger().Debug("stop", slog.String("path", path))
}

// Pause pauses a playing sound. Anything else is ignored.
func (m *Manager) Pause(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok || r.state != device.Playing {
		return
	}
	r.src.Pause()
	r.state = device.Paused
	Logger().Debug("pause", slog.String("path", path))
}

// Update refreshes every cached state from the device.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for path, r := range m.sounds {
		st := r.src.State()
		if st != r.state {
			Logger().Debug("state changed",
				slog.String("path", path),
				slog.String("from", r.state.String()),
				slog.String("to", st.String()))
		}
		r.state = st
	}
}

// Destroy releases every sound and closes the device. Calling it again is
// a no-op. Release errors do not stop the teardown; they are joined.
func (m *Manager) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for path, r := range m.sounds {
		if err := r.release(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	clear(m.sounds)

	if m.open {
		if err := m.dev.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close device: %w", err))
		}
		m.open = false
		Logger().Info("audio device closed")
	}

	err := errors.Join(errs...)
	if err != nil {
		Logger().Warn("destroy", slog.Any("err", err))
	}

	return err
}

// tune applies fn to a loaded sound and reports whether path was found.
func (m *Manager) tune(path string, fn func(r *resource)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok {
		return false
	}
	fn(r)

	return true
}

func (m *Manager) SetGain(path string, gain float32) bool {
	return m.tune(path, func(r *resource) {
		r.params.Gain = gain
		r.src.SetGain(gain)
	})
}

func (m *Manager) SetPitch(path string, pitch float32) bool {
	return m.tune(path, func(r *resource) {
		r.params.Pitch = pitch
		r.src.SetPitch(pitch)
	})
}

func (m *Manager) SetLooping(path string, loop bool) bool {
	return m.tune(path, func(r *resource) {
		r.params.Looping = loop
		r.src.SetLooping(loop)
	})
}

// SetPosition moves a sound without starting it.
func (m *Manager) SetPosition(path string, pos mgl32.Vec3) bool {
	return m.tune(path, func(r *resource) {
		r.params.Position = pos
		r.src.SetPosition(pos)
	})
}

func (m *Manager) SetVelocity(path string, vel mgl32.Vec3) bool {
	return m.tune(path, func(r *resource) {
		r.params.Velocity = vel
		r.src.SetVelocity(vel)
	})
}

// SetListener places the listener every sound is heard from.
func (m *Manager) SetListener(l spatial.Listener) {
	m.dev.SetListener(l)
}

// State is the cached state of path, as of the last command or Update.
func (m *Manager) State(path string) (device.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok {
		return device.Initial, false
	}

	return r.state, true
}

// Params returns the parameters last set on path.
func (m *Manager) Params(path string) (device.Params, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok {
		return device.Params{}, false
	}

	return r.params, true
}

// Format returns the decoded format of path.
func (m *Manager) Format(path string) (audio.Format, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sounds[path]
	if !ok {
		return audio.Format{}, false
	}

	return r.format, true
}

// Len is the number of loaded sounds.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sounds)
}

// Paths lists loaded sounds in sorted order.
func (m *Manager) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.sounds))
	for p := range m.sounds {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	return paths
}
