// SPDX-License-Identifier: EPL-2.0

package audmgr

import (
	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/sound"
)

var registry = sound.DefaultRegistry()

// Formats lists the file extensions DecodeFile understands.
func Formats() []string {
	return registry.Formats()
}

// DecodeFile decodes path with the decoder registered for its extension.
func DecodeFile(path string) (*audio.Clip, error) {
	dec, err := registry.Lookup(path)
	if err != nil {
		return nil, err
	}

	return audio.DecodeFile(dec, path)
}

// ConvertFile decodes path and converts it to a 16-bit clip at rate Hz
// with the given channel count (1 or 2).
func ConvertFile(path string, rate, channels int) (*audio.Clip, error) {
	clip, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return audio.Convert(clip, rate, channels)
}
