// Package dto defines request and response payloads for the API endpoints.
package dto

import (
	"github.com/trackd-analytics/byod/internal/application/usecase/normalize"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ProjectRequest points an operation at a project directory on the server's
// filesystem. Dataset defaults to core_gl when omitted.
type ProjectRequest struct {
	Directory string `json:"directory" binding:"required"`
	Dataset   string `json:"dataset"`
}

// TableValidationDTO reports one table of a validation run.
type TableValidationDTO struct {
	Table          string   `json:"table"`
	File           string   `json:"file"`
	Present        bool     `json:"present"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	FoundColumns   []string `json:"found_columns,omitempty"`
}

// ValidationResponse is the result of POST /projects/validate.
type ValidationResponse struct {
	OK            bool                 `json:"ok"`
	Dataset       string               `json:"dataset"`
	Directory     string               `json:"directory"`
	MissingTables []string             `json:"missing_tables,omitempty"`
	Tables        []TableValidationDTO `json:"tables"`
}

// ToValidationResponse converts a validation report to its response DTO.
func ToValidationResponse(report *valueobject.ValidationReport) ValidationResponse {
	tables := make([]TableValidationDTO, len(report.Tables))
	for i, t := range report.Tables {
		tables[i] = TableValidationDTO{
			Table:          t.Table,
			File:           t.FileName,
			Present:        t.Present,
			MissingColumns: t.MissingColumns,
			FoundColumns:   t.FoundColumns,
		}
	}
	return ValidationResponse{
		OK:            report.OK,
		Dataset:       report.Dataset,
		Directory:     report.Directory,
		MissingTables: report.MissingTables,
		Tables:        tables,
	}
}

// NormalizeRequest extends ProjectRequest with an adapter override.
type NormalizeRequest struct {
	Directory string `json:"directory" binding:"required"`
	Dataset   string `json:"dataset"`
	Adapter   string `json:"adapter"`
}

// NormalizedTableDTO reports one table of a normalize run.
type NormalizedTableDTO struct {
	Table      string `json:"table"`
	SourceFile string `json:"source_file"`
	OutputFile string `json:"output_file,omitempty"`
	RowCount   int    `json:"row_count"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// NormalizeResponse is the result of POST /projects/normalize.
type NormalizeResponse struct {
	RunID         string               `json:"run_id"`
	Adapter       string               `json:"adapter"`
	NormalizedDir string               `json:"normalized_dir"`
	OK            bool                 `json:"ok"`
	Tables        []NormalizedTableDTO `json:"tables"`
}

// ToNormalizeResponse converts a normalize output to its response DTO.
func ToNormalizeResponse(output *normalize.NormalizeProjectOutput) NormalizeResponse {
	tables := make([]NormalizedTableDTO, len(output.Tables))
	for i, t := range output.Tables {
		tables[i] = NormalizedTableDTO{
			Table:      t.Table,
			SourceFile: t.SourceFile,
			OutputFile: t.OutputFile,
			RowCount:   t.RowCount,
			OK:         t.OK,
			Error:      t.Error,
		}
	}
	return NormalizeResponse{
		RunID:         output.RunID.String(),
		Adapter:       output.Adapter,
		NormalizedDir: output.NormalizedDir,
		OK:            output.OK,
		Tables:        tables,
	}
}

// AnalyzeRequest points the analysis at a directory of canonical tables,
// usually the normalized/ directory of a project.
type AnalyzeRequest struct {
	Directory string `json:"directory" binding:"required"`
	Persist   bool   `json:"persist"`
}

// MonthlySummaryDTO is one aggregated row of the monthly summary.
type MonthlySummaryDTO struct {
	Month       string `json:"month"`
	AccountID   string `json:"account_id"`
	NormalSide  string `json:"normal_side"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	NetChange   string `json:"net_change"`
	NLines      int    `json:"n_lines"`
}

// AnalyzeChecksDTO reports the balance self-checks of an analyze run.
type AnalyzeChecksDTO struct {
	GLBalances       bool     `json:"gl_balances"`
	RawAmountSum     string   `json:"raw_amount_sum"`
	UnbalancedTxnIDs []string `json:"unbalanced_txn_ids,omitempty"`
}

// AnalyzeResponse is the result of POST /projects/analyze.
type AnalyzeResponse struct {
	RunID         string              `json:"run_id"`
	NGLLines      int                 `json:"n_gl_lines"`
	NTransactions int                 `json:"n_transactions"`
	NAccounts     int                 `json:"n_accounts"`
	Checks        AnalyzeChecksDTO    `json:"checks"`
	Monthly       []MonthlySummaryDTO `json:"monthly"`
}
