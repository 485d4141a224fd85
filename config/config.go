// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Workbook WorkbookConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DataConfig holds BYOD project data configuration.
type DataConfig struct {
	// ProjectDir is the default project directory used when a request
	// or command does not name one explicitly.
	ProjectDir string

	// NormalizedDirName is the subdirectory of a project that receives
	// canonical CSV output.
	NormalizedDirName string

	// Dataset is the default dataset contract to validate against.
	Dataset string
}

// WorkbookConfig holds the local workbook database configuration.
type WorkbookConfig struct {
	// Path to the sqlite workbook file. Empty disables persistence.
	Path string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Data: DataConfig{
			ProjectDir:        getEnv("BYOD_PROJECT_DIR", "."),
			NormalizedDirName: getEnv("BYOD_NORMALIZED_DIR", "normalized"),
			Dataset:           getEnv("BYOD_DATASET", "core_gl"),
		},
		Workbook: WorkbookConfig{
			Path: getEnv("BYOD_WORKBOOK_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
