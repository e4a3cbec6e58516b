package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Port        string
	SessionTTL  time.Duration
	PinLength   int
	MaxAttempts int
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		SessionTTL:  getDurationEnv("SESSION_TTL", 5*time.Minute),
		PinLength:   getIntEnv("PIN_LENGTH", 4),
		MaxAttempts: getIntEnv("MAX_PIN_ATTEMPTS", 3),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
