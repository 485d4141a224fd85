// Package error defines domain-specific errors for the BYOD pipeline.
//
// Every user-facing failure carries a complete, multi-line message stating
// what was expected, what was found, and a concrete remediation hint. The
// core never prints; callers (CLI, API) only need to render Error().
package error

import (
	"errors"
	"fmt"
	"strings"
)

// Schema and loader sentinel errors.
var (
	// ErrDirectoryNotFound is returned when the data directory does not exist.
	ErrDirectoryNotFound = errors.New("data directory not found")

	// ErrFileNotFound is returned when a required CSV file is absent.
	ErrFileNotFound = errors.New("required file not found")

	// ErrMissingColumns is returned when a CSV lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrDatasetInvalid is returned by AssertValid when a dataset fails
	// its schema contract.
	ErrDatasetInvalid = errors.New("dataset does not satisfy its schema contract")
)

// SchemaErrorCode defines error codes for schema and loader errors.
// Format: SCH-XXYYYY where XX is category and YYYY is specific error.
type SchemaErrorCode string

const (
	ErrCodeDirectoryNotFound SchemaErrorCode = "SCH-010001"
	ErrCodeFileNotFound      SchemaErrorCode = "SCH-010002"
	ErrCodeMissingColumns    SchemaErrorCode = "SCH-010003"
	ErrCodeDatasetInvalid    SchemaErrorCode = "SCH-010004"
)

// SchemaError represents a schema or loader error with code and message.
type SchemaError struct {
	Code    SchemaErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewDirectoryNotFoundError reports a missing data directory with the
// resolved absolute path.
func NewDirectoryNotFoundError(absPath string) *SchemaError {
	return &SchemaError{
		Code: ErrCodeDirectoryNotFound,
		Message: fmt.Sprintf(
			"Data directory not found: %s\nHint: check the path, or run `byod init` to scaffold a project.",
			absPath,
		),
		Err: ErrDirectoryNotFound,
	}
}

// NewFileNotFoundError reports a missing required CSV file.
func NewFileNotFoundError(absPath string) *SchemaError {
	return &SchemaError{
		Code: ErrCodeFileNotFound,
		Message: fmt.Sprintf(
			"Required file not found: %s\nHint: export the table to this location, or point byod.yaml at the right file.",
			absPath,
		),
		Err: ErrFileNotFound,
	}
}

// NewMissingColumnsError reports required columns absent from a present
// file, alongside the columns that were found so a rename or typo is
// visible at a glance.
func NewMissingColumnsError(file string, missing, found []string) *SchemaError {
	return &SchemaError{
		Code: ErrCodeMissingColumns,
		Message: fmt.Sprintf(
			"Missing required columns in %s: %s\nFound columns: %s\nHint: check column names for renames or typos.",
			file,
			strings.Join(missing, ", "),
			strings.Join(found, ", "),
		),
		Err: ErrMissingColumns,
	}
}

// TableColumnProblem names the required columns a present table is missing.
type TableColumnProblem struct {
	Table   string
	Missing []string
}

// NewDatasetInvalidError folds an entire validation report into one error
// so the user sees every missing table and column in a single pass instead
// of fixing them one run at a time.
func NewDatasetInvalidError(dataset, directory string, missingTables []string, columnProblems []TableColumnProblem) *SchemaError {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset %q in %s does not satisfy its schema contract.\n", dataset, directory)
	for _, t := range missingTables {
		fmt.Fprintf(&b, "  missing table file: %s\n", t)
	}
	for _, p := range columnProblems {
		fmt.Fprintf(&b, "  %s: missing required columns: %s\n", p.Table, strings.Join(p.Missing, ", "))
	}
	b.WriteString("Hint: fix every item above, then re-run validation.")

	return &SchemaError{
		Code:    ErrCodeDatasetInvalid,
		Message: b.String(),
		Err:     ErrDatasetInvalid,
	}
}
