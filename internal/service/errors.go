package service

import "errors"

var (
	// ErrNotFound means the referenced draft does not exist.
	ErrNotFound = errors.New("draft not found")

	// ErrInvalidTransition means the action was attempted from a status that
	// forbids it, including races lost against a concurrent decision.
	ErrInvalidTransition = errors.New("invalid status transition")
)
