package ctf

import "errors"

var (
	// ErrNotInitialized is returned by Step and snapshot queries before the first Reset.
	ErrNotInitialized = errors.New("engine not initialized")
	// ErrActionShape is returned when an action sequence does not cover the roster.
	ErrActionShape = errors.New("action sequence does not match roster size")
	// ErrInvalidConfiguration is returned by NewMatch for unusable settings.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvariant reports an internal invariant violation such as a NaN position.
	ErrInvariant = errors.New("internal invariant violation")
)
