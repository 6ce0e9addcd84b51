package files

import "errors"

var (
	// ErrInvalidInput marks validation failures that map to 400 responses.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks lookups for missing files.
	ErrNotFound = errors.New("file not found")
)
