package vmerrors

import (
	"errors"
	"testing"
)

func TestConfigErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewConfigError("loading ROM", inner)
	if !errors.Is(err, inner) {
		t.Error("errors.Is should see through ConfigError to the wrapped error")
	}
}

func TestConfigErrorWithNilInner(t *testing.T) {
	err := NewConfigError("usage", nil)
	if err.Error() == "" {
		t.Error("Error() should not be empty with a nil inner error")
	}
}

func TestBoundsErrorMessage(t *testing.T) {
	err := &BoundsError{Addr: 0x1000}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
