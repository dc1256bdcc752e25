// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrFileNotFound is returned when a sound file cannot be opened.
	ErrFileNotFound = errors.New("sound file not found")

	// ErrUnsupportedFormat matches every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrUnknownFormat is returned when no decoder is registered for a file extension.
	ErrUnknownFormat = errors.New("no decoder registered for format")

	ErrEmptyClip = errors.New("clip holds no samples")

	// ErrInvalidRate is returned for a sample rate that is not positive.
	ErrInvalidRate = errors.New("sample rate must be positive")
)

// UnsupportedFormatError reports a channel/bit-depth pair that has no
// device layout.
type UnsupportedFormatError struct {
	Channels uint8
	Bits     uint8
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported sample format: %d channels, %d bits per sample", e.Channels, e.Bits)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}
