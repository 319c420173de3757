package database

import "errors"

var (
	// ErrStorageFailure wraps any backend read or write failure
	ErrStorageFailure = errors.New("storage failure")
	// ErrInvalidRecord is returned for records missing their key fields
	ErrInvalidRecord = errors.New("invalid record")
)
