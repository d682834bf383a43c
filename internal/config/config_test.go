package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.MaxJitter)
	assert.Equal(t, "BTC", cfg.Currency)
	assert.Empty(t, cfg.APIBaseURL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "https://dice.example.com")
	t.Setenv("BASE_DELAY_MS", "2000")
	t.Setenv("CURRENCY", "LTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://dice.example.com", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.BaseDelay)
	assert.Equal(t, "LTC", cfg.Currency)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidAPIBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}
