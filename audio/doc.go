// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample-level building blocks shared by decoders
// and playback.
//
// A decoded sound is a Clip: raw interleaved PCM plus the Format it is
// stored in. Devices only accept four layouts (mono or stereo, 8 or 16
// bit); Format.Layout reports which one a clip uses or returns an
// *UnsupportedFormatError.
//
// Playback and conversion work on a Source, a stream of interleaved
// float32 samples in [-1, 1]:
//
//	src, _ := audio.NewClipSource(clip)
//	st := audio.NewStereoMixer(src)
//	r := audio.NewResampler(st, 48000)
//	n, err := r.ReadSamples(buf)
//
// ReadSamples may return the last samples together with io.EOF.
// Resampler.Retune changes the source rate mid-stream, which is how pitch
// is applied. Render16 and Convert drain a chain back into a Clip.
//
// Decoders are looked up by file extension through a Registry:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.Lookup("sounds/boom.wav")
package audio
