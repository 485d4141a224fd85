// Package project reads the per-project BYOD configuration file.
package project

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// ConfigFileName is the project configuration file looked up inside every
// BYOD project directory.
const ConfigFileName = "byod.yaml"

// projectFile mirrors the byod.yaml layout.
type projectFile struct {
	Adapter string            `mapstructure:"adapter"`
	Tables  map[string]string `mapstructure:"tables"`
}

// loader implements the ProjectConfigLoader port with viper.
type loader struct {
	// validAdapters is only used to phrase the missing-adapter error.
	validAdapters []string
}

// NewLoader creates a project configuration loader. validAdapters is the
// list of registered adapter names, used to phrase configuration errors.
func NewLoader(validAdapters []string) adapter.ProjectConfigLoader {
	return &loader{validAdapters: validAdapters}
}

// Load parses <projectDir>/byod.yaml. A missing file or a file without an
// adapter declaration is a missing-adapter configuration error, never a
// stack trace; the orchestrator treats it as fatal for the whole run.
func (l *loader) Load(projectDir string) (valueobject.ProjectConfig, error) {
	path := filepath.Join(projectDir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return valueobject.ProjectConfig{}, domainerror.NewMissingAdapterError(l.validAdapters)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return valueobject.ProjectConfig{}, domainerror.NewMissingAdapterError(l.validAdapters)
	}

	var file projectFile
	if err := v.Unmarshal(&file); err != nil {
		return valueobject.ProjectConfig{}, domainerror.NewMissingAdapterError(l.validAdapters)
	}
	if file.Adapter == "" {
		return valueobject.ProjectConfig{}, domainerror.NewMissingAdapterError(l.validAdapters)
	}

	return valueobject.ProjectConfig{
		Adapter: file.Adapter,
		Tables:  file.Tables,
	}, nil
}
