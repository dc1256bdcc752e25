// SPDX-License-Identifier: EPL-2.0

// Package ebitendev plays sources through the audio package of
// github.com/hajimehoshi/ebiten/v2, for games that run on Ebitengine.
//
// Ebitengine has one audio context per process and always mixes 16-bit
// stereo. If the game already created the context, its sample rate is
// used and Options.SampleRate is ignored. Players are driven by the
// Ebitengine game loop.
package ebitendev

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/internal/voice"
	"github.com/ik5/audmgr/spatial"
)

type Options struct {
	SampleRate int // Hz, default 44100
	// BufferSize is the per-player buffer; zero leaves Ebitengine's
	// default.
	BufferSize time.Duration

	Model spatial.Model
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	if o.BufferSize < 0 {
		o.BufferSize = 0
	}
	if o.Model == (spatial.Model{}) {
		o.Model = spatial.DefaultModel()
	}

	return o
}

// New returns a device playing through the Ebitengine audio context.
func New(opts Options) *voice.Device {
	opts = opts.withDefaults()
	return voice.NewDevice(&backend{opts: opts}, opts.Model)
}

// ctxMu serialises the check-then-create of the process-wide context;
// audio.NewContext panics when one exists.
var ctxMu sync.Mutex

func sharedContext(rate int) *audio.Context {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if c := audio.CurrentContext(); c != nil {
		return c
	}

	return audio.NewContext(rate)
}

type backend struct {
	opts Options
	ctx  *audio.Context
}

func (b *backend) Open() (voice.Output, error) {
	b.ctx = sharedContext(b.opts.SampleRate)
	return voice.Output{SampleRate: b.ctx.SampleRate(), Channels: 2}, nil
}

// Close leaves the context alone; it lives as long as the game.
func (b *backend) Close() error { return nil }

func (b *backend) NewPlayer(r io.ReadSeeker) (voice.Player, error) {
	if b.ctx == nil {
		return nil, fmt.Errorf("%w: audio context not created", device.ErrClosed)
	}

	p, err := b.ctx.NewPlayer(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if b.opts.BufferSize > 0 {
		p.SetBufferSize(b.opts.BufferSize)
	}

	return p, nil
}
