// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Display locale for currency formatting.
	Locale   string
	Currency string

	// Advisory endpoint (chat-completions style API).
	AdvisorBaseURL string
	AdvisorAPIKey  string
	AdvisorModel   string
	AdvisorTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Locale:   getEnv("LOCALE", "zh-Hans"),
		Currency: getEnv("CURRENCY", "CNY"),

		AdvisorBaseURL: getEnv("ADVISOR_BASE_URL", "https://api.deepseek.com"),
		AdvisorAPIKey:  getEnv("ADVISOR_API_KEY", ""),
		AdvisorModel:   getEnv("ADVISOR_MODEL", "deepseek-chat"),
	}

	// Parse the advisory request timeout; the advisory call is bounded and
	// a timeout surfaces as a network error.
	timeoutStr := getEnv("ADVISOR_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		log.Printf("Warning: invalid ADVISOR_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	cfg.AdvisorTimeout = timeout

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
