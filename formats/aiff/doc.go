// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files into
// audio clips.
//
// It wraps github.com/go-audio/aiff. AIFF stores signed big-endian
// samples; the decoder converts them to the layout devices accept:
// unsigned 8-bit or signed little-endian 16-bit.
//
//	clip, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not a FORM/AIFF container
//	}
//
// Only 8 and 16-bit mono or stereo files are accepted. Other depths fail
// with ErrUnsupportedBitDepth and other channel counts with
// ErrUnsupportedAiffLayout. AIFF-C is not supported.
package aiff
