package corpus

import "errors"

var (
	// ErrNotFound is returned when a corpus or run does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when adding a corpus whose name is taken.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidInput is returned for empty names and similar bad arguments.
	ErrInvalidInput = errors.New("invalid input")
)
