// Package csvio implements the TableStore port over local CSV files.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// store reads and writes UTF-8, comma-delimited CSV files with a header row.
type store struct{}

// NewStore creates a filesystem-backed table store.
func NewStore() adapter.TableStore {
	return &store{}
}

// ResolveDirectory verifies the data directory exists and returns its
// absolute path.
func (s *store) ResolveDirectory(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve directory %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", domainerror.NewDirectoryNotFoundError(abs)
	}
	return abs, nil
}

// Exists reports whether a file is present.
func (s *store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read loads one CSV into a table. Column order and unrecognized columns
// are preserved; downstream adapters may need them.
func (s *store) Read(path string) (valueobject.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		return valueobject.Table{}, domainerror.NewFileNotFoundError(abs)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; Table pads them
	records, err := reader.ReadAll()
	if err != nil {
		return valueobject.Table{}, fmt.Errorf("parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return valueobject.Table{}, fmt.Errorf("parse CSV %s: file has no header row", path)
	}

	table := valueobject.NewTable(records[0])
	for _, row := range records[1:] {
		table.AppendRow(row)
	}
	return table, nil
}

// ReadRequired is Read plus required-column enforcement.
func (s *store) ReadRequired(path string, requiredColumns []string) (valueobject.Table, error) {
	table, err := s.Read(path)
	if err != nil {
		return valueobject.Table{}, err
	}
	if missing := table.MissingColumns(requiredColumns); len(missing) > 0 {
		return valueobject.Table{}, domainerror.NewMissingColumnsError(filepath.Base(path), missing, table.Columns)
	}
	return table, nil
}

// Write stores a table as CSV. encoding/csv writes "\n" line endings by
// default, which keeps output byte-identical across platforms and re-runs.
func (s *store) Write(path string, table valueobject.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
