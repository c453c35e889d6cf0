package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/elsanchez/bakraload/internal/domain"
)

// Config holds all client configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Download DownloadConfig `yaml:"download"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// ServiceConfig describes the remote download service.
type ServiceConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"BAKRA_SERVICE_URL"`
	Mode      string        `yaml:"mode" envconfig:"BAKRA_MODE"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"BAKRA_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" envconfig:"BAKRA_USER_AGENT"`
}

// DownloadConfig holds local output settings.
type DownloadConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"BAKRA_OUTPUT_DIR"`
	Format    string `yaml:"format" envconfig:"BAKRA_FORMAT"`
}

// UIConfig toggles optional parts of the dashboard.
type UIConfig struct {
	Listing bool `yaml:"listing" envconfig:"BAKRA_LISTING"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"BAKRA_LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"BAKRA_LOG_FORMAT"`
	File   string `yaml:"file" envconfig:"BAKRA_LOG_FILE"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://127.0.0.1:5000",
			Mode:    string(domain.ModeJSON),
		},
		Download: DownloadConfig{
			OutputDir: filepath.Join("~", "Downloads", "bakraload"),
		},
		UI: UIConfig{
			Listing: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(stateHome(), "bakraload", "bakra.log"),
		},
	}
}

// DefaultPath returns the config file looked up when none is given.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bakraload", "config.yaml")
}

// Load reads configuration from file and environment variables.
// Environment variables override file values, which override defaults.
// An empty path falls back to DefaultPath when that file exists.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		if p := DefaultPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				configPath = p
			}
		}
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cfg.Download.OutputDir = expandHome(cfg.Download.OutputDir)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return errors.New("BAKRA_SERVICE_URL is required")
	}
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service url %q", c.Service.BaseURL)
	}
	if _, err := domain.ParseResponseMode(c.Service.Mode); err != nil {
		return err
	}
	if c.Service.Timeout < 0 {
		return errors.New("service timeout must not be negative")
	}
	if _, err := domain.ParseFormat(c.Download.Format); err != nil {
		return err
	}
	if c.Download.OutputDir == "" {
		return errors.New("BAKRA_OUTPUT_DIR is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// ResponseMode returns the parsed service mode. Call after Validate.
func (c *Config) ResponseMode() domain.ResponseMode {
	m, _ := domain.ParseResponseMode(c.Service.Mode)
	return m
}

// Format returns the parsed default format. Call after Validate.
func (c *Config) Format() domain.Format {
	f, _ := domain.ParseFormat(c.Download.Format)
	return f
}

func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join("~", ".local", "state")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
