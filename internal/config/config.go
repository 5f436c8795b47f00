package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/gapedit/internal/config/loader"
	"github.com/dshills/gapedit/internal/engine/gapbuffer"
	"github.com/dshills/gapedit/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "GAPEDIT_"

// Config holds all gapedit settings.
type Config struct {
	Engine  EngineConfig
	Logging LoggingConfig
	Scripts ScriptsConfig

	// Source is the config file that was read, or "" if none was.
	Source string
}

// EngineConfig configures newly created documents.
type EngineConfig struct {
	GapCapacity int
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string
	File  string
}

// ScriptsConfig lists Lua scripts to run at startup.
type ScriptsConfig struct {
	Paths []string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			GapCapacity: gapbuffer.DefaultGapCapacity,
		},
		Logging: LoggingConfig{
			Level: logging.LevelInfo.String(),
		},
	}
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// WithFileSystem reads the config file through fs.
func WithFileSystem(fs loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnvLoader replaces the environment layer.
// A nil loader disables the environment layer.
func WithEnvLoader(env *loader.EnvLoader) LoadOption {
	return func(o *loadOptions) {
		o.env = env
	}
}

// Load builds a Config from the defaults, the file at path (if path is
// non-empty and the file exists) and the environment.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := &loadOptions{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(o)
	}

	data := make(map[string]any)
	source := ""

	if path != "" {
		fl, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		fileData, err := fl.Load()
		if err != nil {
			return nil, err
		}
		if fileData != nil {
			source = path
			data = loader.DeepMerge(data, fileData)
		}
	}

	if o.env != nil {
		envData, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, envData)
	}

	cfg, err := FromMap(data)
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}
	cfg.Source = source
	return cfg, nil
}

// FromMap applies a nested settings map over the defaults and validates
// the result. Unknown keys are ignored.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()

	if v, ok := loader.GetByPath(data, "engine.gap_capacity"); ok {
		n, ok := toInt(v)
		if !ok {
			return nil, invalid("engine.gap_capacity", v)
		}
		cfg.Engine.GapCapacity = n
	}

	if v, ok := loader.GetByPath(data, "logging.level"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid("logging.level", v)
		}
		cfg.Logging.Level = strings.ToLower(s)
	}

	if v, ok := loader.GetByPath(data, "logging.file"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid("logging.file", v)
		}
		cfg.Logging.File = s
	}

	if v, ok := loader.GetByPath(data, "scripts.paths"); ok {
		paths, ok := toStringSlice(v)
		if !ok {
			return nil, invalid("scripts.paths", v)
		}
		cfg.Scripts.Paths = paths
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Engine.GapCapacity <= 0 {
		return fmt.Errorf("%w: engine.gap_capacity must be positive, got %d", ErrInvalidValue, c.Engine.GapCapacity)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q is not one of debug, info, warn, error", ErrInvalidValue, c.Logging.Level)
	}
	for i, p := range c.Scripts.Paths {
		if p == "" {
			return fmt.Errorf("%w: scripts.paths[%d] is empty", ErrInvalidValue, i)
		}
	}
	return nil
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// EngineOptions returns the gap buffer options for new documents.
func (c *Config) EngineOptions(log *logging.Logger) []gapbuffer.Option {
	opts := []gapbuffer.Option{gapbuffer.WithGapCapacity(c.Engine.GapCapacity)}
	if log != nil {
		opts = append(opts, gapbuffer.WithLogger(log))
	}
	return opts
}

func invalid(key string, v any) error {
	return fmt.Errorf("%w: %s has unexpected value %v (%T)", ErrInvalidValue, key, v, v)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// toStringSlice accepts a list of strings or a comma-separated string.
func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	case string:
		if s == "" {
			return nil, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
