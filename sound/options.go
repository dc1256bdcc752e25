// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/formats/aiff"
	"github.com/ik5/audmgr/formats/flac"
	"github.com/ik5/audmgr/formats/mp3"
	"github.com/ik5/audmgr/formats/vorbis"
	"github.com/ik5/audmgr/formats/wav"
)

// Option configures a Manager.
type Option func(*Manager)

// WithParams sets the parameters every loaded sound starts with.
// The default is device.DefaultParams.
func WithParams(p device.Params) Option {
	return func(m *Manager) { m.params = p }
}

// WithRegistry replaces the decoders used by Load. The default is
// DefaultRegistry.
func WithRegistry(r *audio.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.reg = r
		}
	}
}

// DefaultRegistry maps wav, mp3, ogg, aiff, aif and flac to their decoders.
// WAVE files go through the canonical 44-byte header decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("flac", flac.Decoder{})

	return r
}
