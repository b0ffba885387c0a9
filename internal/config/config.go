// Package config holds the checker configuration.
//
// Options are loadable from tova.yaml, found by walking up from the working
// directory. All options have working defaults; a missing config file is not
// an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes for diagnostic output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level tova.yaml configuration.
type Config struct {
	// DebugChecks enables expensive internal verification: acyclicity of
	// unification-variable contents is re-checked after every write.
	DebugChecks bool `yaml:"debug_checks,omitempty"`

	// MaxErrors caps the number of recorded Error diagnostics per session;
	// notes, warnings and fatal errors are not capped. Zero means no cap.
	MaxErrors int `yaml:"max_errors,omitempty"`

	// Color controls diagnostic coloring: auto (only when the output is a
	// terminal), always, or never. Defaults to auto.
	Color string `yaml:"color,omitempty"`
}

// Default returns the configuration used when no tova.yaml is present.
func Default() *Config {
	return &Config{Color: ColorAuto}
}

// LoadConfig reads and parses a tova.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tova.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for tova.yaml starting from dir and walking up
// to parent directories, similar to how .gitignore is found.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "tova.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// Also check tova.yml (common alternative)
		candidate = filepath.Join(dir, "tova.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.MaxErrors < 0 {
		return fmt.Errorf("%s: max_errors must be non-negative, got %d", path, c.MaxErrors)
	}
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never; got %q", path, c.Color)
	}
	return nil
}
