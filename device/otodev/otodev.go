// SPDX-License-Identifier: EPL-2.0

// Package otodev plays sources through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so every device returned by
// New shares it. The context is created by the first Open and is never
// torn down: Close suspends it and the next Open resumes it with the
// format it was created with. If creating it fails, later Opens fail the
// same way.
package otodev

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/internal/voice"
	"github.com/ik5/audmgr/spatial"
)

// Options select the output format. Zero fields take the defaults.
type Options struct {
	SampleRate int // Hz, default 44100
	Channels   int // 1 or 2, default 2

	// BufferSize is the driver buffer; zero leaves the driver default.
	BufferSize time.Duration
	// PlayerBuffer is the per-player buffer in bytes; zero leaves oto's
	// default.
	PlayerBuffer int

	Model spatial.Model
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	if o.Channels != 1 {
		o.Channels = 2
	}
	if o.PlayerBuffer < 0 {
		o.PlayerBuffer = 0
	}
	if o.Model == (spatial.Model{}) {
		o.Model = spatial.DefaultModel()
	}

	return o
}

// New returns a device playing through oto. Nothing is opened until the
// device's Open.
func New(opts Options) *voice.Device {
	opts = opts.withDefaults()
	return voice.NewDevice(&backend{opts: opts}, opts.Model)
}

var (
	ctxMu  sync.Mutex
	ctx    *oto.Context
	ctxOut voice.Output
	ctxErr error
)

// acquire creates the shared context on first use, waiting until it is
// ready, or resumes it.
func acquire(opts Options) (voice.Output, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if ctxErr != nil {
		return voice.Output{}, ctxErr
	}
	if ctx != nil {
		if err := ctx.Resume(); err != nil {
			return voice.Output{}, fmt.Errorf("resume oto context: %w", err)
		}
		return ctxOut, nil
	}

	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		ctxErr = fmt.Errorf("create oto context: %w", err)
		return voice.Output{}, ctxErr
	}
	<-ready

	ctx = c
	ctxOut = voice.Output{SampleRate: opts.SampleRate, Channels: opts.Channels}

	return ctxOut, nil
}

type backend struct {
	opts Options
}

func (b *backend) Open() (voice.Output, error) {
	return acquire(b.opts)
}

func (b *backend) Close() error {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if ctx == nil {
		return nil
	}
	if err := ctx.Suspend(); err != nil {
		return fmt.Errorf("suspend oto context: %w", err)
	}

	return nil
}

func (b *backend) NewPlayer(r io.ReadSeeker) (voice.Player, error) {
	ctxMu.Lock()
	c := ctx
	ctxMu.Unlock()

	if c == nil {
		return nil, fmt.Errorf("%w: oto context not created", device.ErrClosed)
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	p := c.NewPlayer(r)
	if b.opts.PlayerBuffer > 0 {
		p.SetBufferSize(b.opts.PlayerBuffer)
	}

	return &player{Player: p}, nil
}

// player adds Rewind to oto.Player. Seeking makes oto drop what it has
// buffered.
type player struct {
	*oto.Player
}

func (p *player) Rewind() error {
	if _, err := p.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
