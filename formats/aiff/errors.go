// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth is returned for anything but 8 or 16 bit samples
	ErrUnsupportedBitDepth = errors.New("only 8 and 16-bit AIFF is supported")

	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
