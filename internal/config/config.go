// Package config provides configuration loading and validation for the tracker server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultPort              = 8080
	DefaultCORSAllowedOrigin = "*"
)

// Config represents the server configuration. Values come from a JSON file, the
// environment and command-line flags; flags win, then the file, then the environment.
type Config struct {
	Port              int    `json:"port,omitempty"`                // HTTP listen port
	DatabaseURL       string `json:"database_url,omitempty"`        // Postgres URL, or sqlite:/file: path
	CORSAllowedOrigin string `json:"cors_allowed_origin,omitempty"` // Access-Control-Allow-Origin value
	AutoMigrate       *bool  `json:"auto_migrate,omitempty"`        // Apply migrations before serving; nil means unset
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads DATABASE_URL, PORT, CORS_ALLOWED_ORIGIN and AUTO_MIGRATE.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if migrateStr := os.Getenv("AUTO_MIGRATE"); migrateStr != "" {
		autoMigrate, err := strconv.ParseBool(migrateStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AUTO_MIGRATE: %v", err)
		}
		cfg.AutoMigrate = &autoMigrate
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// It runs after merging, so required fields are checked here.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required (set DATABASE_URL)")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CORSAllowedOrigin == "" {
		result.CORSAllowedOrigin = defaults.CORSAllowedOrigin
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AutoMigrate == nil {
		result.AutoMigrate = defaults.AutoMigrate
	}

	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.CORSAllowedOrigin == "" {
		result.CORSAllowedOrigin = DefaultCORSAllowedOrigin
	}

	return result
}

// MigrateOnStart reports whether migrations should run before serving.
func (c *Config) MigrateOnStart() bool {
	return c.AutoMigrate != nil && *c.AutoMigrate
}
