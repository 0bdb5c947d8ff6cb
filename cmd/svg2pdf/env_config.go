package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-svg2pdf/internal/config"
)

// envConfig holds configuration read from SVG2PDF_* environment
// variables. Precedence: CLI flags > env vars > config file > defaults.
type envConfig struct {
	ConfigPath string
	Engine     string
	Inkscape   string
	Timeout    time.Duration
}

// knownEnvVars lists all recognized SVG2PDF_* environment variables.
var knownEnvVars = map[string]bool{
	"SVG2PDF_CONFIG":    true,
	"SVG2PDF_ENGINE":    true,
	"SVG2PDF_INKSCAPE":  true,
	"SVG2PDF_TIMEOUT":   true,
	"SVG2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparseable or non-positive timeout is silently ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SVG2PDF_CONFIG"),
		Engine:     os.Getenv("SVG2PDF_ENGINE"),
		Inkscape:   os.Getenv("SVG2PDF_INKSCAPE"),
	}

	if raw := os.Getenv("SVG2PDF_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for SVG2PDF_* variables that are
// set but not recognized, to catch typos like SVG2PDF_TIMOUT.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, "SVG2PDF_") {
			continue
		}
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// CLI flags are merged afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Inkscape != "" {
		cfg.Inkscape = env.Inkscape
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
}
