// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer adapts a source to one or two output channels.
// Downmixing averages input channels; a mono input feeding a stereo
// output is copied to both sides.
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

// NewMonoMixer averages all channels of src into one.
func NewMonoMixer(src Source) *ChannelMixer {
	return newChannelMixer(src, 1)
}

// NewStereoMixer converts src to two channels.
func NewStereoMixer(src Source) *ChannelMixer {
	return newChannelMixer(src, 2)
}

func newChannelMixer(src Source, out int) *ChannelMixer {
	return &ChannelMixer{
		src: src,
		out: out,
		tmp: make([]float32, 4096),
	}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.out
	need := frames * in

	// grow but never shrink, to avoid thrashing
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.out == 1 && in == 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case m.out == 1:
		inv := float32(1.0) / float32(in)
		for f := range frames {
			sum := float32(0)
			base := f * in
			for c := range in {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			dst[f<<1] = v
			dst[f<<1+1] = v
		}
	default:
		// even input channels feed the left side, odd ones the right
		invL := float32(1.0) / float32((in+1)/2)
		invR := float32(1.0) / float32(in/2)
		for f := range frames {
			var l, r float32
			base := f * in
			for c := range in {
				if c&1 == 0 {
					l += m.tmp[base+c]
				} else {
					r += m.tmp[base+c]
				}
			}
			dst[f<<1] = l * invL
			dst[f<<1+1] = r * invR
		}
	}

	return frames * m.out, err
}
