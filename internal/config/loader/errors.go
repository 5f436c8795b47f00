package loader

import "errors"

// Errors returned by loaders.
var (
	// ErrUnsupportedFormat indicates a config file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)
