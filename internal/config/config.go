package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration, loaded from the process
// environment at startup.
type Config struct {
	AppPort     string
	MongoURI    string
	MongoDB     string
	RabbitMQURL string
	CORSOrigins string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with sensible
// defaults and validates it.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "katalog")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.AutomaticEnv()

	cfg := &Config{
		AppPort:     viper.GetString("APP_PORT"),
		MongoURI:    viper.GetString("MONGO_URI"),
		MongoDB:     viper.GetString("MONGO_DB"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		CORSOrigins: viper.GetString("CORS_ORIGINS"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		LogFormat:   viper.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot start with.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("app port is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("mongo URI is required")
	}
	if c.MongoDB == "" {
		return fmt.Errorf("mongo database name is required")
	}
	if c.CORSOrigins == "" {
		return fmt.Errorf("CORS origins is required")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.LogFormat)
	}
	return nil
}
