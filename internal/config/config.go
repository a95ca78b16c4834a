package config

import (
	"os"
	"strconv"

	"distfit/internal"
	"distfit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig
	Generator GeneratorConfig
	Batch     BatchConfig
	Server    ServerConfig
	UI        UIConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// DefaultMaxSampleSize bounds generated samples when no configuration is given
const DefaultMaxSampleSize = 1_000_000

// GeneratorConfig holds sample generation settings
type GeneratorConfig struct {
	// Seed is nil when generation should not be reproducible
	Seed *uint64
	// MaxSampleSize is the largest count a single request may generate
	MaxSampleSize int
}

// BatchConfig holds batch evaluation settings
type BatchConfig struct {
	MaxConcurrency int
}

// ServerConfig holds JSON API server settings
type ServerConfig struct {
	Port         string
	GinMode      string
	MaxBodyBytes int64
}

// UIConfig holds HTML front-end settings
type UIConfig struct {
	Port           string
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	level, err := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load log configuration")
	}
	config.Log = LogConfig{Level: level}

	generatorConfig, err := loadGeneratorConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load generator configuration")
	}
	config.Generator = *generatorConfig
	config.Generator.MaxSampleSize = getEnvIntOrDefault("MAX_SAMPLE_SIZE", DefaultMaxSampleSize)

	config.Batch = BatchConfig{MaxConcurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4)}

	config.Server = ServerConfig{
		Port:         getEnvOrDefault("API_PORT", "8080"),
		GinMode:      getEnvOrDefault("GIN_MODE", "release"),
		MaxBodyBytes: int64(getEnvIntOrDefault("API_MAX_BODY_BYTES", 10<<20)),
	}

	config.UI = UIConfig{
		Port:           getEnvOrDefault("UI_PORT", "8081"),
		MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 10<<20)),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadGeneratorConfig() (*GeneratorConfig, error) {
	raw := os.Getenv("GENERATOR_SEED")
	if raw == "" {
		return &GeneratorConfig{}, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.ConfigInvalid("GENERATOR_SEED must be a non-negative integer")
	}
	return &GeneratorConfig{Seed: &seed}, nil
}

func validateConfig(config *Config) error {
	if config.Batch.MaxConcurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	if config.Server.Port == "" || config.UI.Port == "" {
		return errors.ConfigInvalid("ports must not be empty")
	}
	if config.UI.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return errors.ConfigInvalid("API_MAX_BODY_BYTES must be positive")
	}
	if config.Generator.MaxSampleSize < 1 {
		return errors.ConfigInvalid("MAX_SAMPLE_SIZE must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
