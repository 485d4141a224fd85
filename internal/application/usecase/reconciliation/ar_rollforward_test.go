package reconciliation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
)

func arLine(date string, debit, credit int64) *entity.TidyLine {
	d, _ := time.Parse("2006-01-02", date)
	return &entity.TidyLine{
		Date:       d,
		AccountID:  "1100",
		Debit:      decimal.NewFromInt(debit),
		Credit:     decimal.NewFromInt(credit),
		NormalSide: entity.NormalSideDebit,
	}
}

func TestARRollforward(t *testing.T) {
	uc := NewARRollforwardUseCase()

	t.Run("chains beginning and ending balances across months", func(t *testing.T) {
		out := uc.Execute(ARRollforwardInput{
			ARAccountID:    "1100",
			OpeningBalance: decimal.NewFromInt(500),
			Lines: []*entity.TidyLine{
				arLine("2024-01-05", 1000, 0),
				arLine("2024-01-20", 0, 400),
				arLine("2024-02-10", 300, 0),
				arLine("2024-02-28", 0, 900),
			},
		})

		if len(out.Rows) != 2 {
			t.Fatalf("expected 2 months, got %d", len(out.Rows))
		}

		jan := out.Rows[0]
		if jan.Month != "2024-01" {
			t.Errorf("expected 2024-01 first, got %s", jan.Month)
		}
		if jan.Beginning.String() != "500" || jan.Billings.String() != "1000" ||
			jan.Collections.String() != "400" || jan.Ending.String() != "1100" {
			t.Errorf("unexpected january row %+v", jan)
		}

		feb := out.Rows[1]
		if feb.Beginning.String() != "1100" || feb.Ending.String() != "500" {
			t.Errorf("unexpected february row %+v", feb)
		}
		if out.EndingBalance.String() != "500" {
			t.Errorf("expected ending balance 500, got %s", out.EndingBalance)
		}
	})

	t.Run("balance carries across gap months", func(t *testing.T) {
		out := uc.Execute(ARRollforwardInput{
			ARAccountID:    "1100",
			OpeningBalance: decimal.Zero,
			Lines: []*entity.TidyLine{
				arLine("2024-01-05", 100, 0),
				arLine("2024-04-05", 0, 100),
			},
		})

		if len(out.Rows) != 2 {
			t.Fatalf("expected 2 active months, got %d", len(out.Rows))
		}
		if out.Rows[1].Month != "2024-04" || out.Rows[1].Beginning.String() != "100" {
			t.Errorf("expected april to begin at 100, got %+v", out.Rows[1])
		}
		if !out.EndingBalance.IsZero() {
			t.Errorf("expected zero ending balance, got %s", out.EndingBalance)
		}
	})

	t.Run("ignores other accounts", func(t *testing.T) {
		other := arLine("2024-01-05", 100, 0)
		other.AccountID = "1000"

		out := uc.Execute(ARRollforwardInput{
			ARAccountID:    "1100",
			OpeningBalance: decimal.NewFromInt(42),
			Lines:          []*entity.TidyLine{other},
		})

		if len(out.Rows) != 0 {
			t.Errorf("expected no rows, got %d", len(out.Rows))
		}
		if out.EndingBalance.String() != "42" {
			t.Errorf("expected opening balance preserved, got %s", out.EndingBalance)
		}
	})

	t.Run("table renders month rows in order", func(t *testing.T) {
		out := uc.Execute(ARRollforwardInput{
			ARAccountID:    "1100",
			OpeningBalance: decimal.Zero,
			Lines: []*entity.TidyLine{
				arLine("2024-02-01", 10, 0),
				arLine("2024-01-01", 20, 0),
			},
		})

		table := out.Table()
		if table.Len() != 2 {
			t.Fatalf("expected 2 rows, got %d", table.Len())
		}
		if table.Get(0, "month") != "2024-01" || table.Get(1, "month") != "2024-02" {
			t.Errorf("expected ascending months, got %q then %q",
				table.Get(0, "month"), table.Get(1, "month"))
		}
	})
}
