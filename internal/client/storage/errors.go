package storage

import "errors"

// Common client storage errors
var (
	// ErrEntityNotFound indicates that entity record was not found
	ErrEntityNotFound = errors.New("entity not found")

	// ErrServerIDConflict indicates an attempt to replace an already assigned server ID
	ErrServerIDConflict = errors.New("server id already assigned")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
