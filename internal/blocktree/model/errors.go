package model

import "errors"

var (
	// ErrNotFound is returned when a referenced node id is not in the tree.
	ErrNotFound = errors.New("node not found")
	// ErrDuplicateID is returned when an insert reuses an id already in the tree.
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrEmptyID is returned when a candidate carries no id.
	ErrEmptyID = errors.New("node id is required")
	// ErrInvalidClass is returned for class tokens outside root/big/child/tiny.
	ErrInvalidClass = errors.New("invalid node class")
)
