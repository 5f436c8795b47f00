package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value of the wrong type or range.
	ErrInvalidValue = errors.New("invalid config value")
)
