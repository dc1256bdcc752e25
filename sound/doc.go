// SPDX-License-Identifier: EPL-2.0

// Package sound manages the sounds of a game: it decodes files, uploads
// them to an audio device and drives their playback from the frame loop.
//
// Sounds are keyed by the path they were loaded from:
//
//	m := sound.NewManager(dev)
//	if err := m.Initialise(); err != nil {
//	    log.Fatal(err) // no audio device
//	}
//	defer m.Destroy()
//
//	m.Load("resources/audio/boing.wav")
//	m.Play("resources/audio/boing.wav", camera.Position)
//
//	for running {
//	    m.Update()
//	    // ...
//	}
//
// Each sound has a cached state (initial, playing, paused or stopped).
// Play does nothing to a sound that is already playing beyond moving it.
// Stop and Pause only act on a playing sound. A sound that reaches its end
// on its own is seen as stopped at the next Update.
//
// Load reports success as a bool and logs the reason for a failure;
// TryLoad returns it instead. Failures match the sentinels of the audio,
// formats/wav and device packages, e.g. audio.ErrFileNotFound,
// wav.ErrMalformedHeader, audio.ErrUnsupportedFormat and
// device.ErrAllocation. A failed load leaves nothing registered or
// allocated.
//
// Logging goes through log/slog and is off until SetLogger is called.
package sound
