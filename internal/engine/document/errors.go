package document

import "github.com/dshills/gapedit/internal/engine/gapbuffer"

// Errors returned by document operations.
var (
	// ErrIndexOutOfBounds indicates an offset outside the visible content.
	// It is the storage engine's error, so errors.Is matches either name.
	ErrIndexOutOfBounds = gapbuffer.ErrIndexOutOfBounds
)
