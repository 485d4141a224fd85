// Package schema contains dataset schema-contract use cases.
package schema

import (
	"path/filepath"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// ValidateDatasetInput identifies the directory and dataset contract to check.
type ValidateDatasetInput struct {
	Directory string
	Dataset   string
}

// ValidateDatasetUseCase checks a data directory against a dataset's schema
// contract: required table files exist, and each file that does exist
// carries its required columns.
type ValidateDatasetUseCase struct {
	store adapter.TableStore
}

// NewValidateDatasetUseCase creates a new ValidateDatasetUseCase instance.
func NewValidateDatasetUseCase(store adapter.TableStore) *ValidateDatasetUseCase {
	return &ValidateDatasetUseCase{store: store}
}

// Execute validates the directory and returns a structured report. It never
// fails on data problems — the report carries them all — and only errors on
// an unknown dataset name or an unusable directory.
func (uc *ValidateDatasetUseCase) Execute(input ValidateDatasetInput) (*valueobject.ValidationReport, error) {
	if input.Dataset == "" {
		input.Dataset = valueobject.DatasetCoreGL
	}

	spec, err := valueobject.LookupDatasetSpec(input.Dataset)
	if err != nil {
		return nil, err
	}

	dir, err := uc.store.ResolveDirectory(input.Directory)
	if err != nil {
		return nil, err
	}

	report := &valueobject.ValidationReport{
		OK:        true,
		Dataset:   spec.Name,
		Directory: dir,
	}

	for _, tableSpec := range spec.Tables {
		path := filepath.Join(dir, tableSpec.FileName)
		result := valueobject.TableValidation{
			Table:    tableSpec.Name,
			FileName: tableSpec.FileName,
		}

		if !uc.store.Exists(path) {
			report.OK = false
			report.MissingTables = append(report.MissingTables, tableSpec.FileName)
			report.Tables = append(report.Tables, result)
			continue
		}

		result.Present = true
		table, err := uc.store.Read(path)
		if err != nil {
			return nil, err
		}
		result.FoundColumns = table.Columns
		result.MissingColumns = table.MissingColumns(tableSpec.RequiredColumns)
		if len(result.MissingColumns) > 0 {
			report.OK = false
		}
		report.Tables = append(report.Tables, result)
	}

	return report, nil
}

// AssertValid runs Execute and converts a failing report into a single
// error enumerating every missing table and column. One message, one fix
// pass — not one error per problem.
func (uc *ValidateDatasetUseCase) AssertValid(input ValidateDatasetInput) (*valueobject.ValidationReport, error) {
	report, err := uc.Execute(input)
	if err != nil {
		return nil, err
	}
	if report.OK {
		return report, nil
	}

	var problems []domainerror.TableColumnProblem
	for _, t := range report.Tables {
		if t.Present && len(t.MissingColumns) > 0 {
			problems = append(problems, domainerror.TableColumnProblem{
				Table:   t.Table,
				Missing: t.MissingColumns,
			})
		}
	}
	return report, domainerror.NewDatasetInvalidError(report.Dataset, report.Directory, report.MissingTables, problems)
}
