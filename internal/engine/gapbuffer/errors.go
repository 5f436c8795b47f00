package gapbuffer

import "errors"

// Errors returned by gap buffer operations.
var (
	// ErrIndexOutOfBounds indicates a read or write addressed outside the
	// visible content.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)
