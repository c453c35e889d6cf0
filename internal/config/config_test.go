package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elsanchez/bakraload/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"BAKRA_SERVICE_URL", "BAKRA_MODE", "BAKRA_TIMEOUT", "BAKRA_USER_AGENT",
		"BAKRA_OUTPUT_DIR", "BAKRA_FORMAT", "BAKRA_LISTING",
		"BAKRA_LOG_LEVEL", "BAKRA_LOG_FORMAT", "BAKRA_LOG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.ResponseMode() != domain.ModeJSON {
		t.Errorf("mode = %q", cfg.ResponseMode())
	}
	if cfg.Service.Timeout != 0 {
		t.Errorf("timeout should default to none, got %v", cfg.Service.Timeout)
	}
	if !cfg.UI.Listing {
		t.Error("listing should be enabled by default")
	}
	if filepath.Base(cfg.Download.OutputDir) != "bakraload" || cfg.Download.OutputDir[0] == '~' {
		t.Errorf("OutputDir = %q", cfg.Download.OutputDir)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
service:
  base_url: http://media.local:8080
  mode: blob
  timeout: 45s
download:
  output_dir: /tmp/bakra
  format: mp3
ui:
  listing: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://media.local:8080" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.ResponseMode() != domain.ModeBlob {
		t.Errorf("mode = %q", cfg.ResponseMode())
	}
	if cfg.Service.Timeout != 45*time.Second {
		t.Errorf("timeout = %v", cfg.Service.Timeout)
	}
	if cfg.Format() != domain.FormatMP3 {
		t.Errorf("format = %q", cfg.Format())
	}
	if cfg.UI.Listing {
		t.Error("listing should be disabled by file")
	}
	// Unset keys keep their defaults
	if cfg.Log.Format != "text" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
service:
  base_url: http://media.local:8080
  mode: blob
download:
  output_dir: /tmp/bakra
`)
	t.Setenv("BAKRA_SERVICE_URL", "http://10.0.0.2:5000")
	t.Setenv("BAKRA_MODE", "json")
	t.Setenv("BAKRA_LISTING", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://10.0.0.2:5000" {
		t.Errorf("BaseURL = %q, env should win", cfg.Service.BaseURL)
	}
	if cfg.ResponseMode() != domain.ModeJSON {
		t.Errorf("mode = %q, env should win", cfg.ResponseMode())
	}
	if cfg.UI.Listing {
		t.Error("listing should be disabled by env")
	}
	if cfg.Download.OutputDir != "/tmp/bakra" {
		t.Errorf("OutputDir = %q, file value should survive", cfg.Download.OutputDir)
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	isolate(t)

	dir := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(dir, "bakraload"), 0755); err != nil {
		t.Fatal(err)
	}
	body := []byte("service:\n  base_url: http://from-default:1\n")
	if err := os.WriteFile(filepath.Join(dir, "bakraload", "config.yaml"), body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Service.BaseURL != "http://from-default:1" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeConfig(t, "service: [")); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty url", func(c *Config) { c.Service.BaseURL = "" }, true},
		{"relative url", func(c *Config) { c.Service.BaseURL = "localhost:5000" }, true},
		{"bad mode", func(c *Config) { c.Service.Mode = "xml" }, true},
		{"negative timeout", func(c *Config) { c.Service.Timeout = -time.Second }, true},
		{"bad format", func(c *Config) { c.Download.Format = "flac" }, true},
		{"empty output", func(c *Config) { c.Download.OutputDir = "" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"mp4", func(c *Config) { c.Download.Format = "mp4" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
