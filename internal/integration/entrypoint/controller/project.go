// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	"github.com/trackd-analytics/byod/internal/application/usecase/ledger"
	"github.com/trackd-analytics/byod/internal/application/usecase/normalize"
	"github.com/trackd-analytics/byod/internal/application/usecase/schema"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
	"github.com/trackd-analytics/byod/internal/integration/entrypoint/dto"
)

// ProjectController handles the project pipeline endpoints: validate,
// normalize, analyze.
type ProjectController struct {
	store            adapter.TableStore
	validateUseCase  *schema.ValidateDatasetUseCase
	normalizeUseCase *normalize.NormalizeProjectUseCase
	analyzeUseCase   *ledger.AnalyzeUseCase
}

// NewProjectController creates a new project controller instance.
func NewProjectController(
	store adapter.TableStore,
	validateUseCase *schema.ValidateDatasetUseCase,
	normalizeUseCase *normalize.NormalizeProjectUseCase,
	analyzeUseCase *ledger.AnalyzeUseCase,
) *ProjectController {
	return &ProjectController{
		store:            store,
		validateUseCase:  validateUseCase,
		normalizeUseCase: normalizeUseCase,
		analyzeUseCase:   analyzeUseCase,
	}
}

// Validate handles POST /projects/validate requests. The report is always
// 200 with ok=false on contract violations; only an unusable request is an
// error status.
func (c *ProjectController) Validate(ctx *gin.Context) {
	var req dto.ProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	report, err := c.validateUseCase.Execute(schema.ValidateDatasetInput{
		Directory: req.Directory,
		Dataset:   req.Dataset,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToValidationResponse(report))
}

// Normalize handles POST /projects/normalize requests.
func (c *ProjectController) Normalize(ctx *gin.Context) {
	var req dto.NormalizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.normalizeUseCase.Execute(normalize.NormalizeProjectInput{
		ProjectDir: req.Directory,
		Dataset:    req.Dataset,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNormalizeResponse(output))
}

// Analyze handles POST /projects/analyze requests. The directory must hold
// canonical tables, usually a project's normalized/ directory.
func (c *ProjectController) Analyze(ctx *gin.Context) {
	var req dto.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	dir, err := c.store.ResolveDirectory(req.Directory)
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	coa, err := c.store.Read(filepath.Join(dir, "chart_of_accounts.csv"))
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}
	journal, err := c.store.Read(filepath.Join(dir, "gl_journal.csv"))
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), ledger.AnalyzeInput{
		ChartOfAccounts: coa,
		GLJournal:       journal,
		Persist:         req.Persist,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	monthly := make([]dto.MonthlySummaryDTO, len(output.Monthly.Rows))
	for i, row := range output.Monthly.Rows {
		monthly[i] = dto.MonthlySummaryDTO{
			Month:       row.Month,
			AccountID:   row.AccountID,
			NormalSide:  string(row.NormalSide),
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit.String(),
			Credit:      row.Credit.String(),
			NetChange:   row.NetChange.String(),
			NLines:      row.NLines,
		}
	}

	ctx.JSON(http.StatusOK, dto.AnalyzeResponse{
		RunID:         output.RunID.String(),
		NGLLines:      output.Summary.Metrics.NGLLines,
		NTransactions: output.Summary.Metrics.NTransactions,
		NAccounts:     output.Summary.Metrics.NAccounts,
		Checks: dto.AnalyzeChecksDTO{
			GLBalances:       output.Summary.Checks.GLBalancesRawAmountSumZero,
			RawAmountSum:     output.Summary.Checks.RawAmountSum.String(),
			UnbalancedTxnIDs: output.Summary.Checks.UnbalancedTxnIDs,
		},
		Monthly: monthly,
	})
}

// handleProjectError maps domain errors to HTTP responses.
func (c *ProjectController) handleProjectError(ctx *gin.Context, err error) {
	var schemaErr *domainerror.SchemaError
	if errors.As(err, &schemaErr) {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, domainerror.ErrDirectoryNotFound) || errors.Is(err, domainerror.ErrFileNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: schemaErr.Message,
			Code:  string(schemaErr.Code),
		})
		return
	}

	var normalizeErr *domainerror.NormalizeError
	if errors.As(err, &normalizeErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: normalizeErr.Message,
			Code:  string(normalizeErr.Code),
		})
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	if errors.Is(err, valueobject.ErrUnknownDataset) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	})
}
