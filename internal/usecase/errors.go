package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrSkipped marks a batch unit that was intentionally not processed,
	// like a month whose calendar endpoint answered with HTML.
	ErrSkipped = errors.New("skipped")
)
