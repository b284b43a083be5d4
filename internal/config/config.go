package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	PublicBaseURL string
	PhoneRegion   string

	TelegramBotToken   string
	TelegramAPIBaseURL string
	TelegramTimeout    time.Duration

	AutoMigrate bool
	SeedOnStart bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   strings.TrimSpace(getEnv("DATABASE_URL", "")),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", "")), "/"),
		PhoneRegion:   strings.ToUpper(strings.TrimSpace(getEnv("PHONE_REGION", "SY"))),

		TelegramBotToken:   strings.TrimSpace(getEnv("TELEGRAM_BOT_TOKEN", "")),
		TelegramAPIBaseURL: getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		TelegramTimeout:    getEnvAsDuration("TELEGRAM_TIMEOUT", 10*time.Second),

		AutoMigrate: getEnvAsBool("AUTO_MIGRATE", true),
		SeedOnStart: getEnvAsBool("SEED_ON_START", true),
	}
}

// Validate reports settings the API cannot start without.
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.New("config: TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(getEnv(key, ""))) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
