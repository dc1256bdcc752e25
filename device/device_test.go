// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
	"testing"
)

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{Initial, "initial"},
		{Playing, "playing"},
		{Paused, "paused"},
		{Stopped, "stopped"},
		{State(9), "state(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	if !p.Looping {
		t.Error("default params should loop")
	}
	if p.Pitch != 1 || p.Gain != 1 {
		t.Errorf("pitch/gain = %v/%v, want 1/1", p.Pitch, p.Gain)
	}
	if p.Position.Len() != 0 || p.Velocity.Len() != 0 {
		t.Errorf("position/velocity = %v/%v, want zero", p.Position, p.Velocity)
	}
}

func TestAllocationError(t *testing.T) {
	t.Parallel()

	cause := errors.New("out of voices")
	err := fmt.Errorf("load: %w", &AllocationError{Resource: "source", Err: cause})

	if !errors.Is(err, ErrAllocation) {
		t.Error("expected ErrAllocation")
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause")
	}

	var ae *AllocationError
	if !errors.As(err, &ae) || ae.Resource != "source" {
		t.Errorf("errors.As = %v", ae)
	}

	bare := &AllocationError{Resource: "buffer"}
	if bare.Error() != "allocate buffer: hardware allocation failed" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
