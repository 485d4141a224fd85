package ledger

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// AnalyzeInput carries the canonical tables plus the persistence switch.
type AnalyzeInput struct {
	ChartOfAccounts valueobject.Table
	GLJournal       valueobject.Table

	// Persist stores the run in the workbook when a repository is wired.
	Persist bool
}

// PreparationMetrics are the headline counts of an analyze run.
type PreparationMetrics struct {
	NGLLines      int
	NTransactions int
	NAccounts     int
}

// PreparationChecks are the data-quality findings of an analyze run. They
// are reported, never enforced: detecting an unbalanced export is part of
// the pipeline's job, so a failed balance check is a finding in the
// summary, not an error.
type PreparationChecks struct {
	// GLBalancesRawAmountSumZero is true when raw_amount sums to zero
	// across the whole ledger.
	GLBalancesRawAmountSumZero bool

	// RawAmountSum is the actual global sum, for display.
	RawAmountSum decimal.Decimal

	// UnbalancedTxnIDs lists transactions whose own lines do not net to
	// zero, in first-seen order.
	UnbalancedTxnIDs []string
}

// PreparationSummary combines metrics and checks.
type PreparationSummary struct {
	Metrics PreparationMetrics
	Checks  PreparationChecks
}

// AnalyzeOutput is the full result of GL preparation: the tidy ledger, its
// monthly aggregation, and the self-check summary.
type AnalyzeOutput struct {
	RunID   uuid.UUID
	Tidy    *PrepareTidyOutput
	Monthly *MonthlySummaryOutput
	Summary PreparationSummary
}

// AnalyzeUseCase composes the tidy transform and the monthly aggregation
// and computes the balance self-checks a user runs to know whether their
// export is internally consistent.
type AnalyzeUseCase struct {
	prepareTidy    *PrepareTidyUseCase
	monthlySummary *MonthlySummaryUseCase
	ledgerRepo     adapter.LedgerRepository // optional; nil disables persistence
}

// NewAnalyzeUseCase creates a new AnalyzeUseCase instance. ledgerRepo may
// be nil when no workbook store is configured.
func NewAnalyzeUseCase(
	prepareTidy *PrepareTidyUseCase,
	monthlySummary *MonthlySummaryUseCase,
	ledgerRepo adapter.LedgerRepository,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		prepareTidy:    prepareTidy,
		monthlySummary: monthlySummary,
		ledgerRepo:     ledgerRepo,
	}
}

// Execute runs the full preparation. Data-quality failures from the tidy
// transform propagate as errors; balance findings land in the summary.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	tidy, err := uc.prepareTidy.Execute(PrepareTidyInput{
		ChartOfAccounts: input.ChartOfAccounts,
		GLJournal:       input.GLJournal,
	})
	if err != nil {
		return nil, err
	}

	monthly := uc.monthlySummary.Execute(MonthlySummaryInput{Lines: tidy.Lines})

	out := &AnalyzeOutput{
		RunID:   uuid.New(),
		Tidy:    tidy,
		Monthly: monthly,
		Summary: summarize(tidy),
	}

	slog.Info("GL preparation complete",
		"run_id", out.RunID,
		"n_gl_lines", out.Summary.Metrics.NGLLines,
		"n_transactions", out.Summary.Metrics.NTransactions,
		"balanced", out.Summary.Checks.GLBalancesRawAmountSumZero,
	)

	if input.Persist && uc.ledgerRepo != nil {
		if err := uc.ledgerRepo.ReplaceRun(ctx, out.RunID, tidy.Lines, monthly.Rows); err != nil {
			return nil, err
		}
		slog.Info("Run persisted to workbook", "run_id", out.RunID)
	}

	return out, nil
}

func summarize(tidy *PrepareTidyOutput) PreparationSummary {
	total := decimal.Zero
	perTxn := make(map[string]decimal.Decimal)
	var txnOrder []string
	txns := make(map[string]bool)

	for _, line := range tidy.Lines {
		total = total.Add(line.RawAmount)
		if !txns[line.TxnID] {
			txns[line.TxnID] = true
			txnOrder = append(txnOrder, line.TxnID)
		}
		perTxn[line.TxnID] = perTxn[line.TxnID].Add(line.RawAmount)
	}

	var unbalanced []string
	for _, txnID := range txnOrder {
		if !perTxn[txnID].IsZero() {
			unbalanced = append(unbalanced, txnID)
		}
	}

	accountIDs := make([]string, 0, len(tidy.Accounts))
	for id := range tidy.Accounts {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	return PreparationSummary{
		Metrics: PreparationMetrics{
			NGLLines:      len(tidy.Lines),
			NTransactions: len(txnOrder),
			NAccounts:     len(accountIDs),
		},
		Checks: PreparationChecks{
			GLBalancesRawAmountSumZero: total.IsZero(),
			RawAmountSum:               total,
			UnbalancedTxnIDs:           unbalanced,
		},
	}
}
