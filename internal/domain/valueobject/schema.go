package valueobject

import (
	"errors"
	"fmt"
)

// Sentinels for contract lookups, matched with errors.Is.
var (
	ErrUnknownTable   = errors.New("unknown table")
	ErrUnknownDataset = errors.New("unknown dataset")
)

// Canonical table and dataset names.
const (
	TableChartOfAccounts = "chart_of_accounts"
	TableGLJournal       = "gl_journal"

	DatasetCoreGL = "core_gl"
)

// Canonical column sets, in canonical output order.
var (
	ChartOfAccountsColumns = []string{"account_id", "account_name", "account_type", "normal_side"}
	GLJournalColumns       = []string{"txn_id", "date", "doc_id", "description", "account_id", "debit", "credit"}
)

// TableSpec declares the schema contract for one canonical table.
type TableSpec struct {
	Name            string
	FileName        string
	RequiredColumns []string
}

// DatasetSpec declares the set of table files a named dataset requires.
type DatasetSpec struct {
	Name   string
	Tables []TableSpec
}

// Schema contracts are declared here and nowhere else. Lookups are
// explicit: asking for an unknown table or dataset is an error, never a
// silently-empty contract.
var (
	tableSpecs = map[string]TableSpec{
		TableChartOfAccounts: {
			Name:            TableChartOfAccounts,
			FileName:        "chart_of_accounts.csv",
			RequiredColumns: ChartOfAccountsColumns,
		},
		TableGLJournal: {
			Name:            TableGLJournal,
			FileName:        "gl_journal.csv",
			RequiredColumns: GLJournalColumns,
		},
	}

	datasetSpecs = map[string]DatasetSpec{
		DatasetCoreGL: {
			Name: DatasetCoreGL,
			Tables: []TableSpec{
				tableSpecs[TableChartOfAccounts],
				tableSpecs[TableGLJournal],
			},
		},
	}
)

// LookupTableSpec returns the contract for a canonical table name.
func LookupTableSpec(name string) (TableSpec, error) {
	spec, ok := tableSpecs[name]
	if !ok {
		return TableSpec{}, fmt.Errorf("%w %q: no schema contract declared", ErrUnknownTable, name)
	}
	return spec, nil
}

// LookupDatasetSpec returns the contract for a named dataset.
func LookupDatasetSpec(name string) (DatasetSpec, error) {
	spec, ok := datasetSpecs[name]
	if !ok {
		return DatasetSpec{}, fmt.Errorf("%w %q: no schema contract declared", ErrUnknownDataset, name)
	}
	return spec, nil
}

// TableValidation is the per-table outcome of a dataset validation.
type TableValidation struct {
	Table          string
	FileName       string
	Present        bool
	MissingColumns []string
	FoundColumns   []string
}

// ValidationReport is the structured result of validating a data directory
// against a dataset contract. It is always returned, never raised: the
// caller decides whether to render it or to escalate via AssertValid.
type ValidationReport struct {
	OK            bool
	Dataset       string
	Directory     string
	MissingTables []string
	Tables        []TableValidation
}
