// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	// ErrAlreadyInitialised is returned by a second Initialise without a
	// Destroy in between.
	ErrAlreadyInitialised = errors.New("audio already initialised")

	// ErrNotInitialised is returned by TryLoad before Initialise.
	ErrNotInitialised = errors.New("audio not initialised")

	// ErrAlreadyLoaded is returned by TryLoad for a path that is registered.
	ErrAlreadyLoaded = errors.New("sound already loaded")
)
