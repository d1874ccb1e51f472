package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/projector/internal/projector"
	"github.com/roach88/projector/internal/store"
)

// Setting keys, shared by the defaults map, env variables and flags.
const (
	KeyConfig  = "config"
	KeyPwd     = "pwd"
	KeyBackend = "backend"
	KeyFormat  = "format"
	KeyVerbose = "verbose"
)

// Output formats for show-all.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatJSON, FormatYAML, FormatText}

// Config holds the resolved settings for one invocation.
type Config struct {
	// Config is the backing file holding the projector store.
	Config string `koanf:"config"`

	// Pwd is the directory lookups are resolved from.
	Pwd string `koanf:"pwd"`

	Backend string `koanf:"backend"`
	Format  string `koanf:"format"`
	Verbose bool   `koanf:"verbose"`
}

// Dir returns the directory holding projector's own files.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, "projector"), nil
}

// DefaultSettingsFile returns <UserConfigDir>/projector/settings.yaml.
func DefaultSettingsFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// Defaults returns the lowest-priority settings layer.
//
// Paths that cannot be determined (no user config directory, no working
// directory) are left out rather than failing, so higher layers can still
// supply them. Validate reports them if nothing does.
func Defaults() (map[string]any, error) {
	defaults := map[string]any{
		KeyBackend: store.BackendJSON,
		KeyFormat:  FormatJSON,
		KeyVerbose: false,
	}

	if dir, err := Dir(); err == nil {
		defaults[KeyConfig] = filepath.Join(dir, "projector.json")
	}
	if pwd, err := os.Getwd(); err == nil {
		defaults[KeyPwd] = pwd
	}

	return defaults, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(store.ValidBackends, c.Backend) {
		return fmt.Errorf("invalid backend %q: must be one of %v", c.Backend, store.ValidBackends)
	}
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if c.Config == "" {
		return fmt.Errorf("config path must not be empty: set --config or %sCONFIG", DefaultEnvPrefix)
	}
	if c.Pwd == "" {
		return fmt.Errorf("pwd must not be empty: set --pwd or %sPWD", DefaultEnvPrefix)
	}
	return nil
}

// normalize makes both paths absolute. Pwd additionally goes through
// projector.NormalizePath so it matches stored directory keys.
func (c *Config) normalize() error {
	pwd, err := projector.NormalizePath(c.Pwd)
	if err != nil {
		return err
	}
	c.Pwd = pwd

	cfg, err := filepath.Abs(c.Config)
	if err != nil {
		return fmt.Errorf("normalize config path %q: %w", c.Config, err)
	}
	c.Config = cfg
	return nil
}
