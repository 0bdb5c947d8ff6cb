package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrInvalidConfig   = errors.New("invalid config")
)

// DefaultName is the config name searched when no --config flag is given.
const DefaultName = "svg2pdf"

// configDirName is the subdirectory of os.UserConfigDir searched for configs.
const configDirName = "svg2pdf"

// maxConfigSize limits config input to prevent memory exhaustion (1MB).
const maxConfigSize = 1 << 20

// Config holds all conversion settings. Fields absent from the YAML file
// keep the defaults from DefaultConfig.
type Config struct {
	Engine   string `yaml:"engine"`    // "inkscape" or "chrome"
	Inkscape string `yaml:"inkscape"`  // inkscape binary name or path (empty = "inkscape")
	Timeout  string `yaml:"timeout"`   // Go duration string, e.g. "45s" (empty = converter default)
	Inline   bool   `yaml:"inline"`    // inline linked vector images
	PlainSVG bool   `yaml:"plain_svg"` // pre-convert editor SVG to plain SVG
	Verbose  bool   `yaml:"verbose"`
	Quiet    bool   `yaml:"quiet"`
}

// DefaultConfig returns the built-in defaults: Inkscape engine with both
// inlining and plain SVG pre-conversion enabled.
func DefaultConfig() *Config {
	return &Config{
		Engine:   "inkscape",
		Inline:   true,
		PlainSVG: true,
	}
}

// Validate checks the engine and timeout values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Engine != "" {
		switch strings.ToLower(c.Engine) {
		case "inkscape", "chrome":
			// valid
		default:
			return fmt.Errorf("%w: engine: unknown value %q (must be inkscape or chrome)", ErrInvalidConfig, c.Engine)
		}
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses the timeout field. An empty timeout returns zero,
// meaning the converter default applies.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	return d, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	return loadFile(configPath)
}

// LoadDefault loads the default config if one exists in a standard location.
// A missing default config is not an error: built-in defaults are returned.
func LoadDefault() (*Config, error) {
	path, ok := FindDefault()
	if !ok {
		return DefaultConfig(), nil
	}
	return loadFile(path)
}

// FindDefault reports the path of the default config file, if one exists.
func FindDefault() (string, bool) {
	for _, p := range SearchPaths(DefaultName) {
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// SearchPaths lists the candidate paths for a config name in search order:
// current directory first, then the user config directory, trying .yaml
// before .yml in each location.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// loadFile reads, decodes, and validates a single config file.
// Unknown YAML fields are rejected. An empty file yields the defaults.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidConfig, path, maxConfigSize)
	}

	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
