// Package db provides workbook database connection and management.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackd-analytics/byod/config"
	"github.com/trackd-analytics/byod/internal/integration/persistence/model"
)

// Database wraps the GORM workbook connection. The workbook is a single
// sqlite file next to the project data; it is a cache of the last analyze
// run, never the source of truth (the CSVs are).
type Database struct {
	db  *gorm.DB
	cfg *config.WorkbookConfig
}

// NewWorkbookConnection opens (or creates) the workbook sqlite file.
func NewWorkbookConnection(cfg *config.WorkbookConfig) (*Database, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	slog.Info("Workbook opened", "path", cfg.Path)

	return &Database{
		db:  db,
		cfg: cfg,
	}, nil
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Migrate creates or updates the workbook tables.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(
		&model.TidyLineModel{},
		&model.MonthlySummaryModel{},
	); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// HealthCheck performs a health check on the workbook connection.
func (d *Database) HealthCheck() bool {
	sqlDB, err := d.db.DB()
	if err != nil {
		slog.Error("Failed to get sql.DB for health check", "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("Workbook health check failed", "error", err)
		return false
	}

	return true
}

// Close closes the workbook connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close workbook: %w", err)
	}

	slog.Info("Workbook closed")
	return nil
}
