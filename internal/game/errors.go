package game

import "errors"

// Callers match these with errors.Is; returned errors wrap them with detail.
var (
	// ErrInvalidInput covers bad codes (wrong length, unknown symbol) and bad config.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState is returned when the session status forbids the operation.
	ErrInvalidState = errors.New("invalid state")
)
