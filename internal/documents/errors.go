package documents

import "errors"

var (
	// ErrInvalidInput marks validation failures that map to 400 responses.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks lookups for missing or deleted documents.
	ErrNotFound = errors.New("document not found")
)
