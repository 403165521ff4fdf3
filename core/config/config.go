// Package config loads the optional socorro-cli configuration file. The
// file is HJSON so it can carry comments; it is parsed to a map first and
// re-marshaled through JSON for type safety.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hjson/hjson-go/v4"
)

// Default endpoints and query defaults, used when no config file exists
// or a field is unset.
const (
	DefaultAPIBaseURL          = "https://crash-stats.mozilla.org/api"
	DefaultCorrelationsBaseURL = "https://analysis-output.telemetry.mozilla.org/top-signatures-correlations/data"
	DefaultProduct             = "Firefox"
	DefaultDays                = 7
)

// Config holds the user-tunable settings.
type Config struct {
	APIBaseURL          string `json:"api_base_url"`
	CorrelationsBaseURL string `json:"correlations_base_url"`
	DefaultProduct      string `json:"default_product"`
	DefaultDays         int    `json:"default_days"`
}

// Defaults returns a Config with every field at its default.
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses the configuration from the given path, applying
// defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Parse HJSON to an intermediate map, then go through JSON for
	// type-safe unmarshaling into the struct.
	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse hjson: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert to json: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault loads the config file from the user config directory, or
// returns the defaults when no file exists. A file that exists but cannot
// be parsed is an error; a missing file is not.
func LoadDefault() (*Config, error) {
	path, err := defaultPath()
	if err != nil {
		return Defaults(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Defaults(), nil
	}
	return Load(path)
}

// defaultPath returns ~/.config/socorro-cli/config.hjson (or the platform
// equivalent).
func defaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "socorro-cli", "config.hjson"), nil
}

func applyDefaults(cfg *Config) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.CorrelationsBaseURL == "" {
		cfg.CorrelationsBaseURL = DefaultCorrelationsBaseURL
	}
	if cfg.DefaultProduct == "" {
		cfg.DefaultProduct = DefaultProduct
	}
	if cfg.DefaultDays == 0 {
		cfg.DefaultDays = DefaultDays
	}
}
