// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Format describes decoded PCM data.
//
// Only four (Channels, BitsPerSample) pairs can be uploaded to a device:
// 1/8, 1/16, 2/8 and 2/16. Decoders do not enforce this; Layout does.
type Format struct {
	Channels      uint8
	SampleRate    int32
	BitsPerSample uint8
	DataSize      int32
}

// Layout selects the device sample layout for f.
// It returns an *UnsupportedFormatError for any pair outside the four
// supported ones.
func (f Format) Layout() (Layout, error) {
	switch {
	case f.Channels == 1 && f.BitsPerSample == 8:
		return Mono8, nil
	case f.Channels == 1 && f.BitsPerSample == 16:
		return Mono16, nil
	case f.Channels == 2 && f.BitsPerSample == 8:
		return Stereo8, nil
	case f.Channels == 2 && f.BitsPerSample == 16:
		return Stereo16, nil
	}

	return LayoutUnknown, &UnsupportedFormatError{
		Channels: f.Channels,
		Bits:     f.BitsPerSample,
	}
}

// FrameSize is the byte size of one interleaved frame.
func (f Format) FrameSize() int {
	return int(f.Channels) * int(f.BitsPerSample) / 8
}

// Frames reports the number of whole frames described by DataSize.
func (f Format) Frames() int {
	fs := f.FrameSize()
	if fs == 0 || f.DataSize <= 0 {
		return 0
	}

	return int(f.DataSize) / fs
}

// Duration is the playing time of DataSize bytes at SampleRate.
func (f Format) Duration() time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}

	return time.Duration(f.Frames()) * time.Second / time.Duration(f.SampleRate)
}

func (f Format) String() string {
	return fmt.Sprintf("%d ch, %d Hz, %d bit, %d bytes",
		f.Channels, f.SampleRate, f.BitsPerSample, f.DataSize)
}

// Layout is the sample layout a device buffer is created with.
type Layout uint8

const (
	LayoutUnknown Layout = iota
	Mono8
	Mono16
	Stereo8
	Stereo16
)

// Channels returns the interleaved channel count of l.
func (l Layout) Channels() int {
	switch l {
	case Mono8, Mono16:
		return 1
	case Stereo8, Stereo16:
		return 2
	default:
		return 0
	}
}

// BitsPerSample returns the sample width of l.
func (l Layout) BitsPerSample() int {
	switch l {
	case Mono8, Stereo8:
		return 8
	case Mono16, Stereo16:
		return 16
	default:
		return 0
	}
}

func (l Layout) String() string {
	switch l {
	case Mono8:
		return "mono8"
	case Mono16:
		return "mono16"
	case Stereo8:
		return "stereo8"
	case Stereo16:
		return "stereo16"
	default:
		return fmt.Sprintf("layout(%d)", uint8(l))
	}
}

// Clip is a fully decoded sound: raw interleaved PCM plus its format.
// 8-bit data is unsigned, 16-bit data is signed little-endian.
// A Clip is not modified after it is returned by a decoder.
type Clip struct {
	Format Format
	Data   []byte
}

// NewClip builds a Clip over data and fixes Format.DataSize to len(data).
func NewClip(channels uint8, sampleRate int32, bitsPerSample uint8, data []byte) *Clip {
	return &Clip{
		Format: Format{
			Channels:      channels,
			SampleRate:    sampleRate,
			BitsPerSample: bitsPerSample,
			DataSize:      int32(len(data)),
		},
		Data: data,
	}
}
