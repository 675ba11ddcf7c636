package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness
	// constraint (duplicate email, username, or ID). The store is the
	// sole arbiter of uniqueness under concurrent writes.
	ErrConflict = errors.New("record already exists")
)
