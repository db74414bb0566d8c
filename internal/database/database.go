// Package database opens and migrates the ledger store.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/internal/config"
	"github.com/gigworks/ledgerd/pkg/metrics"
	"github.com/gigworks/ledgerd/pkg/models"
)

// New opens a gorm connection for the configured driver, applies pool
// settings and runs migrations.
func New(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the ledger schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Contract{},
		&models.Job{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// CollectPoolMetrics publishes connection pool gauges every interval until
// stop is closed.
func CollectPoolMetrics(db *gorm.DB, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if sqlDB, err := db.DB(); err == nil {
				stats := sqlDB.Stats()
				metrics.DBOpenConns.Set(float64(stats.OpenConnections))
				metrics.DBIdleConns.Set(float64(stats.Idle))
				metrics.DBInUseConns.Set(float64(stats.InUse))
			}
		case <-stop:
			return
		}
	}
}
