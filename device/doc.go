// SPDX-License-Identifier: EPL-2.0

// Package device defines the hardware audio boundary: an output device that
// allocates buffers (uploaded PCM) and sources (playback units with pitch,
// gain, looping, position and velocity).
//
// Backends live in subpackages: otodev and ebitendev drive real outputs,
// devicetest is an in-memory fake for tests.
package device
