package database

import (
	"fmt"

	"fintrack/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database operations.
type Manager struct {
	db         *gorm.DB
	migrateURL string
}

// NewManager creates a new database manager over the embedded SQLite store.
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	// SQLite allows a single writer; serializing connections avoids
	// SQLITE_BUSY under concurrent handlers.
	sqlDB.SetMaxOpenConns(1)

	return &Manager{db: db, migrateURL: config.MigrateURL()}, nil
}

// RunMigrations applies pending SQL migrations from the migrations/ directory,
// including the first-run seed of the default book, accounts, and categories.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", m.migrateURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}
