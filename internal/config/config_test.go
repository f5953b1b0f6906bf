package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"katalog/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "katalog", cfg.MongoDB)
	assert.Equal(t, "", cfg.RabbitMQURL)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("MONGO_DB", "storefront")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "storefront", cfg.MongoDB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "silly")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		AppPort:     ":8080",
		MongoURI:    "mongodb://localhost:27017",
		MongoDB:     "katalog",
		CORSOrigins: "*",
		LogLevel:    "info",
		LogFormat:   "json",
	}
	assert.NoError(t, valid.Validate())

	missingURI := valid
	missingURI.MongoURI = ""
	assert.Error(t, missingURI.Validate())

	missingDB := valid
	missingDB.MongoDB = ""
	assert.Error(t, missingDB.Validate())
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn", LogFormat: "json"}
	logger := config.NewLogger(cfg)
	assert.Equal(t, "warn", logger.GetLevel().String())
}
