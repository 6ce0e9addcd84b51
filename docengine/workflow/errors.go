package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected locally before any service call.
	ErrValidation = errors.New("missing required field")
	// ErrNoFile marks a create attempt without an attached file.
	ErrNoFile = errors.New("no file attached")
	// ErrTransport wraps a failed document service call.
	ErrTransport = errors.New("document service request failed")
)

func missingField(name string) error {
	return fmt.Errorf("%s: %w", name, ErrValidation)
}

func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
}
