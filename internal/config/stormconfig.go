// Package config loads harness configuration from TOML files and
// environment variables. Precedence, lowest to highest: built-in
// defaults, the config file, then STORMSCRIPT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "STORMSCRIPT_"

// Config holds harness settings.
type Config struct {
	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// MaxDepth limits nested macro expansion. Zero disables the guard,
	// preserving the original unguarded behavior.
	MaxDepth int `toml:"max_depth"`

	// ReportPath, when set, is where the JSON run report is written.
	ReportPath string `toml:"report_path"`

	// Color enables colored console output.
	Color bool `toml:"color"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		MaxDepth: 200,
		Color:    true,
	}
}

// Load builds a Config from defaults, an optional TOML file, and
// environment overrides. A missing file at the default location is not
// an error; an explicitly named file that is missing is.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Default location, nothing there: run on defaults.
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.config/stormscript/config.toml"
}

// applyEnv overrides settings from STORMSCRIPT_* variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MAX_DEPTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDepth = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REPORT_PATH"); ok {
		cfg.ReportPath = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "COLOR"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Color = b
		}
	}
}

// Validate checks settings for consistency.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	return nil
}
