package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/trackd-analytics/byod/internal/domain/entity"
)

// LedgerRepository persists derived ledger tables to the local workbook
// store. The pipeline is a pure function of its inputs, so persistence is
// full-replace: each run supersedes the previous one.
type LedgerRepository interface {
	// ReplaceRun deletes any previously stored run and stores the given
	// tidy lines and monthly summaries under runID.
	ReplaceRun(ctx context.Context, runID uuid.UUID, lines []*entity.TidyLine, summaries []*entity.MonthlySummary) error

	// FindMonthlySummaries returns the stored summaries for a run,
	// ordered by (month, account_id, normal_side).
	FindMonthlySummaries(ctx context.Context, runID uuid.UUID) ([]*entity.MonthlySummary, error)
}
