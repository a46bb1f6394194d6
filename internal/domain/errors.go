package domain

import "errors"

var (
	// ErrNotFound is returned when a flight, gate or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on a uniqueness violation, e.g. a duplicate
	// flight number or gate number.
	ErrConflict = errors.New("already exists")
)
