// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to the SQLite text store

	// Observer location, used for candle-lighting and solar times
	LocationName string
	LocationCC   string // ISO country code
	LocationLat  float64
	LocationLng  float64
	LocationTZ   string // IANA timezone id

	// Sefaria text API (importer and optional verse validation)
	SefariaBaseURL string

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	// This is a no-op in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/tanach.db")

	// Observer location, Amsterdam by default
	cfg.LocationName = getEnv("LOCATION_NAME", "Amsterdam")
	cfg.LocationCC = getEnv("LOCATION_CC", "NL")
	cfg.LocationLat = getEnvFloat("LOCATION_LAT", 52.3676)
	cfg.LocationLng = getEnvFloat("LOCATION_LNG", 4.9041)
	cfg.LocationTZ = getEnv("LOCATION_TZ", "Europe/Amsterdam")

	// Sefaria
	cfg.SefariaBaseURL = getEnv("SEFARIA_BASE_URL", "https://www.sefaria.org/api/texts")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	// Validate environment
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	// Validate database path is set
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// Validate observer location
	if c.LocationName == "" {
		errs = append(errs, errors.New("LOCATION_NAME is required"))
	}
	if c.LocationLat < -90 || c.LocationLat > 90 {
		errs = append(errs, fmt.Errorf("LOCATION_LAT must be between -90 and 90, got %v", c.LocationLat))
	}
	if c.LocationLng < -180 || c.LocationLng > 180 {
		errs = append(errs, fmt.Errorf("LOCATION_LNG must be between -180 and 180, got %v", c.LocationLng))
	}
	if _, err := time.LoadLocation(c.LocationTZ); err != nil {
		errs = append(errs, fmt.Errorf("LOCATION_TZ is not a valid timezone: %q", c.LocationTZ))
	}

	if c.SefariaBaseURL == "" {
		errs = append(errs, errors.New("SEFARIA_BASE_URL is required"))
	}

	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	// Validate log format
	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat reads an environment variable as a float with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
