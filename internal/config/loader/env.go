package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
	raw     map[string]bool   // Config paths whose values are never converted
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for the variables of the given prefix
// (including its trailing underscore, e.g. "GAPEDIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	l := NewEnvLoaderWithMapping(defaultEnvMapping(prefix))
	for _, path := range []string{"logging.level", "logging.file", "scripts.paths"} {
		l.raw[path] = true
	}
	return l
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
		raw:     make(map[string]bool),
		lookup:  os.LookupEnv,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":    "logging.level",
		prefix + "LOG_FILE":     "logging.file",
		prefix + "GAP_CAPACITY": "engine.gap_capacity",
		prefix + "SCRIPTS":      "scripts.paths",
	}
}

// Load reads the mapped variables and returns a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		val, ok := l.lookup(env)
		if !ok {
			continue
		}
		if l.raw[path] {
			setByPath(config, path, val)
		} else {
			setByPath(config, path, parseValue(val))
		}
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// AddStringMapping adds a mapping whose value is always kept as a string.
func (l *EnvLoader) AddStringMapping(envVar, configPath string) {
	l.AddMapping(envVar, configPath)
	if l.raw == nil {
		l.raw = make(map[string]bool)
	}
	l.raw[configPath] = true
}

// parseValue converts integers and booleans; everything else stays a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}
