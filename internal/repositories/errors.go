package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that finds no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when a record with the same key already exists.
	ErrDuplicate = errors.New("already exists")
)
