package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds database configuration. The ledger persists to an embedded
// SQLite database file; tests use an in-memory database instead.
type Config struct {
	Path string
}

// NewConfig creates a new database configuration.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	return &Config{
		Path: getEnv("DB_PATH", "fintrack.db"),
	}, nil
}

// DSN returns the SQLite connection string. Foreign keys are enabled so
// dangling transaction references are rejected at the storage layer too.
func (c *Config) DSN() string {
	return fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000", c.Path)
}

// MigrateURL returns the database URL for golang-migrate.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("sqlite3://%s?x-no-tx-wrap=false", c.Path)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
