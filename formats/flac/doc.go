// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files into 16-bit audio clips using
// github.com/mewkiz/flac.
//
// Samples deeper than 16 bits are truncated and shallower ones are scaled
// up, so every clip uploads as Mono16 or Stereo16. Streams with more than
// two channels fail with ErrUnsupportedFlacLayout.
package flac
