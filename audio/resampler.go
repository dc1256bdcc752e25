// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmgr/utils"
)

// Resampler streams src at a target sample rate using cubic interpolation.
// Works on interleaved samples and preserves channel count.
// A one-pole low-pass is applied to incoming frames while downsampling.
//
// The source side of the ratio can be changed mid-stream with Retune,
// which is how playback pitch is applied without rebuilding the chain.
type Resampler struct {
	src      Source
	dstRate  float64
	ratio    float64 // source frames consumed per output frame
	channels int

	// window of 4 frames for cubic interpolation:
	// win[0] = t-1, win[1] = t0, win[2] = t+1, win[3] = t+2
	win    [4][]float32
	filled [4]bool
	primed bool

	// fractional position between win[1] and win[2]
	pos float64

	srcBuf []float32
	eof    bool // source exhausted
	done   bool // window drained

	lowPass bool
	alpha   float32
	lpState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  float64(dstRate),
		channels: channels,
		srcBuf:   make([]float32, channels),
		lpState:  make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	r.Retune(src.SampleRate())

	return r
}

// Retune changes the rate the source is treated as having.
// Passing rate*pitch raises or lowers playback pitch by that factor.
func (r *Resampler) Retune(srcRate int) {
	if srcRate <= 0 {
		srcRate = int(r.dstRate)
	}

	r.ratio = float64(srcRate) / r.dstRate
	r.lowPass = r.ratio > 1.0
	r.alpha = 0
	if r.lowPass {
		r.alpha = 0.5
	}
}

// Ratio reports source frames consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.ratio }

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Reset drops buffered frames so the next read starts from the source's
// current position.
func (r *Resampler) Reset() {
	for i := range r.win {
		clear(r.win[i])
		r.filled[i] = false
	}
	clear(r.lpState)
	r.primed = false
	r.pos = 0
	r.eof = false
	r.done = false
}

func (r *Resampler) filter(frame []float32) {
	if !r.lowPass {
		return
	}
	for c := range r.channels {
		frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.lpState[c]
		r.lpState[c] = frame[c]
	}
}

// readFrame pulls a single frame from src into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.srcBuf)
	got := n > 0
	if got {
		copy(dst, r.srcBuf[:n])
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return got, fmt.Errorf("%w", err)
	}

	return got, nil
}

// prime loads the first frame into both win[0] and win[1], then reads
// ahead into win[2] and win[3].
func (r *Resampler) prime() error {
	got, err := r.readFrame(r.win[1])
	if err != nil {
		return err
	}
	if !got {
		return io.EOF
	}
	if r.lowPass {
		copy(r.lpState, r.win[1])
	}
	copy(r.win[0], r.win[1])
	r.filled[0], r.filled[1] = true, true

	for i := 2; i < len(r.win); i++ {
		r.filled[i] = false
		if r.eof {
			continue
		}
		got, err := r.readFrame(r.win[i])
		if err != nil {
			return err
		}
		if got {
			r.filter(r.win[i])
			r.filled[i] = true
		}
	}

	r.primed = true
	return nil
}

// advance shifts the window by one frame. It returns io.EOF once no
// frame is left at win[1].
func (r *Resampler) advance() error {
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], r.win[0]
	r.filled[0], r.filled[1], r.filled[2] = r.filled[1], r.filled[2], r.filled[3]
	r.filled[3] = false

	if !r.eof {
		got, err := r.readFrame(r.win[3])
		if err != nil {
			return err
		}
		if got {
			r.filter(r.win[3])
			r.filled[3] = true
		}
	}

	if !r.filled[1] {
		r.done = true
		return io.EOF
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	want := len(dst) / r.channels

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			y1 := r.win[1][c]
			y0 := y1
			if r.filled[0] {
				y0 = r.win[0][c]
			}
			y2 := y1
			if r.filled[2] {
				y2 = r.win[2][c]
			}
			y3 := y2
			if r.filled[3] {
				y3 = r.win[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
