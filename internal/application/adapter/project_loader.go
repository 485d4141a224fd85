package adapter

import (
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// ProjectConfigLoader reads the per-project configuration file (byod.yaml)
// from a project directory.
type ProjectConfigLoader interface {
	// Load parses the project configuration. A missing file or a file
	// without an adapter declaration yields the missing-adapter domain
	// error, never a parse stack trace.
	Load(projectDir string) (valueobject.ProjectConfig, error)
}
