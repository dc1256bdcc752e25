// SPDX-License-Identifier: EPL-2.0

// Package audmgr loads sound files for games and plays them on an audio
// device.
//
// The work is split across subpackages:
//   - audio: PCM clips, formats, streaming sources and the decoder registry
//   - formats/wav: canonical 44-byte header WAVE decoder and encoder
//   - formats/mp3, formats/vorbis, formats/aiff, formats/flac: other clip
//     decoders
//   - device: the hardware boundary (buffers, sources, playback state)
//   - device/otodev, device/ebitendev: real outputs
//   - sound: the resource manager that owns loaded sounds
//
// # Playing sounds
//
//	dev := otodev.New(otodev.Options{})
//	m := sound.NewManager(dev)
//	if err := m.Initialise(); err != nil {
//		log.Fatal(err)
//	}
//	defer m.Destroy()
//
//	m.Load("assets/jump.wav")
//	m.Play("assets/jump.wav", mgl32.Vec3{})
//
//	// once per frame
//	m.Update()
//
// # Decoding only
//
// DecodeFile picks a decoder from the file extension and returns the raw
// clip. ConvertFile also resamples and remixes it:
//
//	clip, err := audmgr.ConvertFile("voice.mp3", 16000, 1)
//
// See the subpackages for details.
package audmgr
