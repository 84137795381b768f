package persist

import "errors"

var (
	// ErrNotFound is returned when no blob exists under the requested key.
	ErrNotFound = errors.New("strata: blob not found")

	// ErrNilEntity is returned when saving or loading a nil entity.
	ErrNilEntity = errors.New("strata: entity must not be nil")
)
