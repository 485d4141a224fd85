// Package adapter defines interfaces (ports) between the application layer
// and the integration layer.
package adapter

import (
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// TableStore abstracts tabular file I/O so use cases can run against any
// directory (including test temp dirs) without touching the filesystem
// API directly.
type TableStore interface {
	// ResolveDirectory returns the absolute path of an existing data
	// directory, or a directory-not-found error carrying a hint.
	ResolveDirectory(path string) (string, error)

	// Exists reports whether a file is present.
	Exists(path string) bool

	// Read loads one CSV into a table, preserving column order and every
	// unrecognized column. Returns a file-not-found error when absent.
	Read(path string) (valueobject.Table, error)

	// ReadRequired is Read plus required-column enforcement: missing
	// columns produce an error listing both the missing and the found
	// column names.
	ReadRequired(path string, requiredColumns []string) (valueobject.Table, error)

	// Write stores a table as CSV, creating parent directories as needed.
	// Output is deterministic: identical tables produce identical bytes.
	Write(path string, table valueobject.Table) error
}
