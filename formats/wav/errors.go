// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader matches every *HeaderError.
	ErrMalformedHeader = errors.New("malformed WAV header")

	ErrTagMismatch      = errors.New("unexpected tag")
	ErrNegativeDataSize = errors.New("negative data size")
	ErrTruncatedData    = errors.New("data chunk shorter than declared size")

	ErrNotWavFile  = errors.New("not a WAV file")
	ErrNoDataChunk = errors.New("no data chunk")
	ErrNotPCM      = errors.New("only uncompressed PCM is supported")

	ErrUnsupportedLayout = errors.New("unsupported sample layout for encoding")
)

// HeaderError reports the first header field that could not be read or
// did not hold the expected value. Fields after it are never read.
type HeaderError struct {
	Field string
	Err   error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("malformed WAV header: field %q: %v", e.Field, e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

func (e *HeaderError) Is(target error) bool {
	return target == ErrMalformedHeader
}
