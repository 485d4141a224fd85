package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/trackd-analytics/byod/internal/domain/entity"
)

type recordingLedgerRepo struct {
	replaceCalls int
	runID        uuid.UUID
	lines        []*entity.TidyLine
	summaries    []*entity.MonthlySummary
}

func (r *recordingLedgerRepo) ReplaceRun(_ context.Context, runID uuid.UUID, lines []*entity.TidyLine, summaries []*entity.MonthlySummary) error {
	r.replaceCalls++
	r.runID = runID
	r.lines = lines
	r.summaries = summaries
	return nil
}

func (r *recordingLedgerRepo) FindMonthlySummaries(_ context.Context, _ uuid.UUID) ([]*entity.MonthlySummary, error) {
	return r.summaries, nil
}

func newAnalyzeUseCase(repo *recordingLedgerRepo) *AnalyzeUseCase {
	if repo == nil {
		return NewAnalyzeUseCase(NewPrepareTidyUseCase(), NewMonthlySummaryUseCase(), nil)
	}
	return NewAnalyzeUseCase(NewPrepareTidyUseCase(), NewMonthlySummaryUseCase(), repo)
}

func TestAnalyze(t *testing.T) {
	t.Run("balanced ledger passes the self-check", func(t *testing.T) {
		uc := newAnalyzeUseCase(nil)

		out, err := uc.Execute(context.Background(), AnalyzeInput{
			ChartOfAccounts: balancedInput().ChartOfAccounts,
			GLJournal:       balancedInput().GLJournal,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Summary.Checks.GLBalancesRawAmountSumZero {
			t.Error("expected balanced ledger")
		}
		if out.Summary.Metrics.NGLLines != 2 || out.Summary.Metrics.NTransactions != 1 || out.Summary.Metrics.NAccounts != 2 {
			t.Errorf("unexpected metrics %+v", out.Summary.Metrics)
		}
		if len(out.Summary.Checks.UnbalancedTxnIDs) != 0 {
			t.Errorf("expected no unbalanced txns, got %v", out.Summary.Checks.UnbalancedTxnIDs)
		}
	})

	t.Run("unbalanced ledger is a finding, not an error", func(t *testing.T) {
		uc := newAnalyzeUseCase(nil)

		input := balancedInput()
		input.GLJournal = journalTable(
			[]string{"t1", "2024-01-05", "", "", "1000", "100", ""},
			[]string{"t1", "2024-01-05", "", "", "4000", "", "90"},
		)

		out, err := uc.Execute(context.Background(), AnalyzeInput{
			ChartOfAccounts: input.ChartOfAccounts,
			GLJournal:       input.GLJournal,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Summary.Checks.GLBalancesRawAmountSumZero {
			t.Error("expected balance check to fail")
		}
		if out.Summary.Checks.RawAmountSum.String() != "10" {
			t.Errorf("expected sum 10, got %s", out.Summary.Checks.RawAmountSum)
		}
		if len(out.Summary.Checks.UnbalancedTxnIDs) != 1 || out.Summary.Checks.UnbalancedTxnIDs[0] != "t1" {
			t.Errorf("expected [t1], got %v", out.Summary.Checks.UnbalancedTxnIDs)
		}
	})

	t.Run("persist stores the run when a repository is wired", func(t *testing.T) {
		repo := &recordingLedgerRepo{}
		uc := newAnalyzeUseCase(repo)

		out, err := uc.Execute(context.Background(), AnalyzeInput{
			ChartOfAccounts: balancedInput().ChartOfAccounts,
			GLJournal:       balancedInput().GLJournal,
			Persist:         true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.replaceCalls != 1 {
			t.Fatalf("expected one ReplaceRun call, got %d", repo.replaceCalls)
		}
		if repo.runID != out.RunID {
			t.Error("expected the run id to be passed through")
		}
		if len(repo.lines) != 2 || len(repo.summaries) != 2 {
			t.Errorf("expected 2 lines and 2 summaries, got %d/%d", len(repo.lines), len(repo.summaries))
		}
	})

	t.Run("persist without a repository is a no-op", func(t *testing.T) {
		uc := newAnalyzeUseCase(nil)

		_, err := uc.Execute(context.Background(), AnalyzeInput{
			ChartOfAccounts: balancedInput().ChartOfAccounts,
			GLJournal:       balancedInput().GLJournal,
			Persist:         true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
