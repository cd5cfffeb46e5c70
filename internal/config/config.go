package config

import (
	"os"
	"strconv"

	"pulseboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Engine   EngineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. Persistence is optional:
// with no DATABASE_URL the server runs purely in memory.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// EngineConfig holds analytics engine tunables
type EngineConfig struct {
	SampleSize    int     // rows inspected per column during classification
	ZThreshold    float64 // anomaly screening threshold
	MaxUploadSize int64   // bytes
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Engine: EngineConfig{
			SampleSize:    getEnvIntOrDefault("ENGINE_SAMPLE_SIZE", 10),
			ZThreshold:    getEnvFloatOrDefault("ENGINE_Z_THRESHOLD", 2.0),
			MaxUploadSize: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		},
	}
	cfg.Database.Enabled = cfg.Database.URL != ""

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if cfg.Engine.SampleSize <= 0 {
		return errors.ConfigInvalid("ENGINE_SAMPLE_SIZE must be positive")
	}
	if cfg.Engine.ZThreshold <= 0 {
		return errors.ConfigInvalid("ENGINE_Z_THRESHOLD must be positive")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
