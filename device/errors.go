// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDevice is returned by Open when no audio output is available.
	ErrNoDevice = errors.New("no audio device available")

	// ErrAllocation matches every *AllocationError.
	ErrAllocation = errors.New("hardware allocation failed")

	ErrClosed        = errors.New("device is not open")
	ErrDeleted       = errors.New("resource already deleted")
	ErrForeignBuffer = errors.New("buffer belongs to another device")
)

// AllocationError reports a buffer or source the device could not create.
type AllocationError struct {
	Resource string
	Err      error
}

func (e *AllocationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("allocate %s: hardware allocation failed", e.Resource)
	}

	return fmt.Sprintf("allocate %s: %v", e.Resource, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}
