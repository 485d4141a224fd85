// Package main is the entry point for the BYOD API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/trackd-analytics/byod/config"
	"github.com/trackd-analytics/byod/internal/infra/db"
	"github.com/trackd-analytics/byod/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting BYOD API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Open the workbook when one is configured
	var database *db.Database
	var workbookHealthChecker func() bool

	if cfg.Workbook.Path != "" {
		var err error
		database, err = db.NewWorkbookConnection(&cfg.Workbook)
		if err != nil {
			slog.Warn("Workbook unavailable, running without persistence",
				"error", err,
			)
			database = nil
		} else {
			if err := database.Migrate(); err != nil {
				slog.Error("Failed to run workbook migrations", "error", err)
				os.Exit(1)
			}
			slog.Info("Workbook migrations completed successfully")

			workbookHealthChecker = database.HealthCheck
			defer func() {
				if err := database.Close(); err != nil {
					slog.Error("Failed to close workbook", "error", err)
				}
			}()
		}
	}

	// Wire dependencies
	var gormDB *gorm.DB
	if database != nil {
		gormDB = database.DB()
	}
	injector := dependency.NewInjector(cfg, gormDB, workbookHealthChecker)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
