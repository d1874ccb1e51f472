package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "PROJECTOR_"

// Loader layers defaults, settings file, environment and flags.
type Loader struct {
	k            *koanf.Koanf
	envPrefix    string
	settingsPath string
	flags        map[string]any
	defaults     func() (map[string]any, error)
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithSettingsFile sets the YAML settings file. A missing file is skipped.
func WithSettingsFile(path string) Option {
	return func(l *Loader) {
		l.settingsPath = path
	}
}

// WithFlags sets the highest-priority layer. Only flags the user actually
// set should be included, or their defaults would mask env and file values.
func WithFlags(flags map[string]any) Option {
	return func(l *Loader) {
		l.flags = flags
	}
}

// WithDefaults replaces the default layer. Used by tests to avoid depending
// on the real user config directory.
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = func() (map[string]any, error) { return defaults, nil }
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
		defaults:  Defaults,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load resolves all layers into a validated, normalized Config.
// Loading order (later sources override earlier):
//  1. Defaults
//  2. Settings file (YAML)
//  3. Environment variables
//  4. Flags
func (l *Loader) Load() (*Config, error) {
	defaults, err := l.defaults()
	if err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := l.k.Load(mapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := l.LoadFile(l.settingsPath); err != nil {
		return nil, err
	}

	if err := l.LoadEnv(); err != nil {
		return nil, err
	}

	if len(l.flags) > 0 {
		if err := l.k.Load(mapProvider(l.flags), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile loads settings from a YAML file. Empty or missing paths are
// skipped; a file that exists but cannot be parsed is an error.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load settings file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads settings from environment variables.
// Example: PROJECTOR_CONFIG=/tmp/projector.json -> config
func (l *Loader) LoadEnv() error {
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, "_", ".")
		return s
	}

	if err := l.k.Load(env.Provider(l.envPrefix, ".", envTransformer), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}
