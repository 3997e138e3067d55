// Package database opens and migrates the local store and, when configured,
// the remote snapshot store.
package database

import (
	"fmt"

	"financehub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// allModels is migrated into the local store on startup.
var allModels = []interface{}{
	&models.Transaction{},
	&models.Card{},
	&models.Goal{},
	&models.Investment{},
	&models.Reminder{},
	&models.Notification{},
	&models.Settings{},
	&models.Profile{},
}

// Manager owns the local GORM connection.
type Manager struct {
	db *gorm.DB
}

// NewManager opens the local SQLite store at the given path.
func NewManager(path string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return &Manager{db: db}, nil
}

// Migrate creates or updates the local schema.
func (m *Manager) Migrate() error {
	if err := m.db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("failed to migrate local store: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenRemote opens the remote snapshot store with the given driver and DSN.
// The remote holds one JSON document per collection key; its schema is
// migrated by the syncer package.
func OpenRemote(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // Required for connection poolers; harmless for direct connections
		})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported remote driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open remote store: %w", err)
	}
	return db, nil
}
