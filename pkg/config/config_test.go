package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://localhost:4440" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
	if cfg.APIVersion != 44 {
		t.Errorf("expected API version 44, got %d", cfg.APIVersion)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.WriteEnabled {
		t.Error("write capability must be off by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info log level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_NoFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv(EnvURL, "https://rundeck.example.com")
	t.Setenv(EnvAPIToken, "env-token")
	t.Setenv(EnvAPIVersion, "41")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://rundeck.example.com" {
		t.Errorf("env base URL not applied, got %s", cfg.BaseURL)
	}
	if cfg.APIToken != "env-token" {
		t.Errorf("env token not applied, got %s", cfg.APIToken)
	}
	if cfg.APIVersion != 41 {
		t.Errorf("env API version not applied, got %d", cfg.APIVersion)
	}
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
base_url: "http://file.example.com"
api_token: "file-token"
api_version: 40
timeout: 10s
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(EnvAPIToken, "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://file.example.com" {
		t.Errorf("file base URL not applied, got %s", cfg.BaseURL)
	}
	if cfg.APIToken != "env-token" {
		t.Errorf("env must win over file, got %s", cfg.APIToken)
	}
	if cfg.APIVersion != 40 {
		t.Errorf("file API version not applied, got %d", cfg.APIVersion)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("file timeout not applied, got %v", cfg.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("file log level not applied, got %s", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvAPIToken, "token")

	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(EnvAPIToken, "token")

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv(EnvAPIToken, "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error when no token is configured")
	}
	if !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.APIToken = "t" }, false},
		{"missing token", func(c *Config) {}, true},
		{"missing base url", func(c *Config) { c.APIToken = "t"; c.BaseURL = "" }, true},
		{"bad scheme", func(c *Config) { c.APIToken = "t"; c.BaseURL = "ftp://x" }, true},
		{"zero api version", func(c *Config) { c.APIToken = "t"; c.APIVersion = 0 }, true},
		{"zero timeout", func(c *Config) { c.APIToken = "t"; c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIToken = "super-secret"

	redacted := cfg.Redacted()

	if redacted.APIToken != "****" {
		t.Errorf("token not masked: %s", redacted.APIToken)
	}
	if cfg.APIToken != "super-secret" {
		t.Error("original config must not be modified")
	}
}
