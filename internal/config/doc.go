// Package config loads gapedit's settings.
//
// Settings are layered, lowest precedence first:
//
//  1. Built-in defaults (see Default)
//  2. A config file, TOML or YAML chosen by extension
//  3. Environment variables with the GAPEDIT_ prefix
//
// Supported keys:
//
//	engine.gap_capacity  int > 0, bytes added each time the gap is exhausted
//	logging.level        debug, info, warn or error
//	logging.file         path of the log file; empty disables file logging
//	scripts.paths        Lua scripts run at startup
//
// A missing config file is not an error. Parse failures are returned as
// *loader.ParseError and bad values wrap ErrInvalidValue with the key.
//
// The watcher subpackage reports changes to the config file so callers
// can reload it.
package config
