// Package config loads and validates the rundeck-mcp server configuration.
// Configuration is resolved once at startup from an optional YAML file plus
// environment overrides, and the resulting Config is passed into the core
// components explicitly. Nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

// Environment variables recognized as overrides. Names match the ones the
// Rundeck ecosystem already uses, so existing setups keep working.
const (
	EnvURL        = "RUNDECK_URL"
	EnvAPIToken   = "RUNDECK_API_TOKEN"
	EnvAPIVersion = "RUNDECK_API_VERSION"
)

// Config represents the complete rundeck-mcp configuration
type Config struct {
	// Rundeck connection settings
	BaseURL    string `yaml:"base_url"`
	APIToken   string `yaml:"api_token"`
	APIVersion int    `yaml:"api_version"`

	// WriteEnabled grants the write capability (run_job). Off by default;
	// normally flipped by the --enable-write-tools flag, not the file.
	WriteEnabled bool `yaml:"write_enabled"`

	// Transport settings
	Timeout time.Duration `yaml:"timeout"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:4440",
		APIVersion: 44,
		Timeout:    30 * time.Second,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from an optional YAML file, then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv(EnvAPIVersion); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.APIVersion = n
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("%w: api token is required; set %s "+
			"(generate one in Rundeck under User Profile > User API Tokens)",
			errors.ErrInvalidConfig, EnvAPIToken)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url is required", errors.ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: base_url must start with http:// or https://", errors.ErrInvalidConfig)
	}
	if c.APIVersion < 1 {
		return fmt.Errorf("%w: api_version must be positive", errors.ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", errors.ErrInvalidConfig)
	}
	return nil
}

// Redacted returns a copy safe for logging, with the token masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.APIToken != "" {
		out.APIToken = "****"
	}
	return out
}
