// Package config loads folio settings from the config file, .env and FOLIO_ variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/folio/internal/common"
)

// Defaults applied before the config file and environment are read.
const (
	DefaultBaseURL         = "http://localhost:8000"
	DefaultTimeout         = 30 * time.Second
	DefaultRateLimit       = 10.0
	DefaultRetries         = 3
	DefaultRefreshInterval = 5 * time.Minute
	DefaultStoragePath     = "~/.config/folio/folio.db"
)

// Config holds the resolved application settings.
type Config struct {
	BaseURL         string
	StoragePath     string
	LogLevel        string
	LogFormat       string
	Timeout         time.Duration
	RefreshInterval time.Duration
	RateLimit       float64
	Retries         int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.rate_limit", DefaultRateLimit)
	v.SetDefault("api.retries", DefaultRetries)
	v.SetDefault("refresh.interval", DefaultRefreshInterval)
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load resolves a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:         strings.TrimRight(v.GetString("api.base_url"), "/"),
		Timeout:         v.GetDuration("api.timeout"),
		RateLimit:       v.GetFloat64("api.rate_limit"),
		Retries:         v.GetInt("api.retries"),
		RefreshInterval: v.GetDuration("refresh.interval"),
		StoragePath:     ExpandPath(v.GetString("storage.path")),
		LogLevel:        v.GetString("logging.level"),
		LogFormat:       v.GetString("logging.format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: api.rate_limit must be positive", common.ErrInvalidConfig)
	}
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("%w: refresh.interval must be at least 1s", common.ErrInvalidConfig)
	}
	if c.StoragePath == "" {
		return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
