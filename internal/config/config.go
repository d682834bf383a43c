package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `validate:"required,oneof=dev staging prod test"`
	LogLevel    string `validate:"required"`
	LogFormat   string `validate:"required,oneof=json text"`
	Port        int    `validate:"gte=0,lte=65535"`

	// Remote site API. APIKey may be empty for simulation-only runs.
	APIBaseURL string `validate:"omitempty,url"`
	APIKey     string

	// Optional Postgres history store. Empty disables persistence.
	DatabaseURL string

	// Bet log file. Empty disables the JSONL sink.
	BetLogPath string

	// Session pacing defaults
	BaseDelay time.Duration `validate:"gte=0"`
	MaxJitter time.Duration `validate:"gte=0"`

	Currency string `validate:"required"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		APIBaseURL:  getEnv("API_BASE_URL", ""),
		APIKey:      getEnv("API_KEY", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		BetLogPath:  getEnv("BET_LOG_PATH", ""),
		Currency:    getEnv("CURRENCY", "BTC"),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	baseDelayMs, err := getEnvInt("BASE_DELAY_MS", 1500)
	if err != nil {
		return nil, err
	}
	cfg.BaseDelay = time.Duration(baseDelayMs) * time.Millisecond

	jitterMs, err := getEnvInt("MAX_JITTER_MS", 500)
	if err != nil {
		return nil, err
	}
	cfg.MaxJitter = time.Duration(jitterMs) * time.Millisecond

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return n, nil
}
