package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Uniqueness(t *testing.T) {
	t.Parallel()

	allErrors := []error{
		ErrDeviceUnavailable,
		ErrStreamOpen,
		ErrStreamStart,
		ErrStreamFailed,
		ErrUnknownBackend,
	}

	messages := make(map[string]bool)
	for i, err := range allErrors {
		if err == nil {
			t.Fatalf("errors[%d] is nil", i)
		}
		if messages[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		messages[err.Error()] = true
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"ErrDeviceUnavailable", ErrDeviceUnavailable},
		{"ErrStreamOpen", ErrStreamOpen},
		{"ErrStreamStart", ErrStreamStart},
		{"ErrStreamFailed", ErrStreamFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("%w: %w", tt.err, errors.New("device said no"))
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) = false, want true", tt.name)
			}
		})
	}
}
