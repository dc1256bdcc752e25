// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile indicates the stream has no fLaC signature or a broken
	// STREAMINFO block
	ErrNotFlacFile = errors.New("not a FLAC file")

	ErrUnsupportedBitDepth   = errors.New("unsupported FLAC bit depth")
	ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")
)
