package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
)

func tidyLine(txnID, date, accountID, name string, accountType entity.AccountType, side entity.NormalSide, debit, credit int64) *entity.TidyLine {
	d, _ := time.Parse("2006-01-02", date)
	deb := decimal.NewFromInt(debit)
	cred := decimal.NewFromInt(credit)
	raw := deb.Sub(cred)
	amount := raw
	if side != entity.NormalSideDebit {
		amount = raw.Neg()
	}
	return &entity.TidyLine{
		TxnID:       txnID,
		Date:        d,
		AccountID:   accountID,
		AccountName: name,
		AccountType: accountType,
		NormalSide:  side,
		Debit:       deb,
		Credit:      cred,
		RawAmount:   raw,
		Amount:      amount,
	}
}

func TestMonthlySummary(t *testing.T) {
	uc := NewMonthlySummaryUseCase()

	lines := []*entity.TidyLine{
		tidyLine("t1", "2024-01-05", "1000", "Cash", entity.AccountTypeAsset, entity.NormalSideDebit, 100, 0),
		tidyLine("t1", "2024-01-05", "4000", "Sales", entity.AccountTypeRevenue, entity.NormalSideCredit, 0, 100),
		tidyLine("t2", "2024-01-20", "1000", "Cash", entity.AccountTypeAsset, entity.NormalSideDebit, 50, 0),
		tidyLine("t3", "2024-02-02", "1000", "Cash", entity.AccountTypeAsset, entity.NormalSideDebit, 0, 30),
	}

	out := uc.Execute(MonthlySummaryInput{Lines: lines})

	t.Run("one row per month, account and side", func(t *testing.T) {
		if len(out.Rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(out.Rows))
		}
		seen := make(map[[3]string]bool)
		for _, r := range out.Rows {
			key := [3]string{r.Month, r.AccountID, string(r.NormalSide)}
			if seen[key] {
				t.Errorf("duplicate group %v", key)
			}
			seen[key] = true
		}
	})

	t.Run("rows are sorted by month then account", func(t *testing.T) {
		if out.Rows[0].Month != "2024-01" || out.Rows[0].AccountID != "1000" {
			t.Errorf("unexpected first row %+v", out.Rows[0])
		}
		if out.Rows[2].Month != "2024-02" {
			t.Errorf("unexpected last row %+v", out.Rows[2])
		}
	})

	t.Run("aggregates debits, credits, net change and line count", func(t *testing.T) {
		cashJan := out.Rows[0]
		if cashJan.Debit.String() != "150" {
			t.Errorf("expected debit 150, got %s", cashJan.Debit)
		}
		if !cashJan.Credit.IsZero() {
			t.Errorf("expected credit 0, got %s", cashJan.Credit)
		}
		if cashJan.NetChange.String() != "150" {
			t.Errorf("expected net_change 150, got %s", cashJan.NetChange)
		}
		if cashJan.NLines != 2 {
			t.Errorf("expected 2 lines, got %d", cashJan.NLines)
		}
	})

	t.Run("negative net change is reported, not rejected", func(t *testing.T) {
		cashFeb := out.Rows[2]
		if cashFeb.NetChange.String() != "-30" {
			t.Errorf("expected net_change -30, got %s", cashFeb.NetChange)
		}
	})

	t.Run("table renders canonical columns", func(t *testing.T) {
		table := out.Table()
		if len(table.Columns) != 9 || table.Columns[0] != "month" || table.Columns[8] != "n_lines" {
			t.Errorf("unexpected columns %v", table.Columns)
		}
		if got := table.Get(0, "n_lines"); got != "2" {
			t.Errorf("expected n_lines 2, got %q", got)
		}
	})
}
