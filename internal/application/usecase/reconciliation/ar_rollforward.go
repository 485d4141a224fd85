package reconciliation

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// ARRollforwardInput selects one receivable account from the tidy ledger.
type ARRollforwardInput struct {
	Lines          []*entity.TidyLine
	ARAccountID    string
	OpeningBalance decimal.Decimal
}

// ARRollforwardRow is one month of the roll-forward:
// ending = beginning + billings - collections.
type ARRollforwardRow struct {
	Month       string
	Beginning   decimal.Decimal
	Billings    decimal.Decimal // debits to the AR account
	Collections decimal.Decimal // credits to the AR account
	Ending      decimal.Decimal
	NLines      int
}

// ARRollforwardOutput is the month-by-month roll-forward. Rows cover only
// months with activity, in ascending order; the chain of beginning/ending
// balances is continuous across gaps.
type ARRollforwardOutput struct {
	Rows          []*ARRollforwardRow
	EndingBalance decimal.Decimal
}

// ARRollforwardUseCase builds a receivables roll-forward from tidy GL
// activity.
type ARRollforwardUseCase struct{}

// NewARRollforwardUseCase creates a new ARRollforwardUseCase instance.
func NewARRollforwardUseCase() *ARRollforwardUseCase {
	return &ARRollforwardUseCase{}
}

// Execute rolls the account forward month by month. Debits are billings,
// credits are collections; the tidy transform guarantees both are
// non-negative so the split is exact.
func (uc *ARRollforwardUseCase) Execute(input ARRollforwardInput) *ARRollforwardOutput {
	byMonth := make(map[string]*ARRollforwardRow)
	for _, line := range input.Lines {
		if line.AccountID != input.ARAccountID {
			continue
		}
		month := line.Month()
		row, ok := byMonth[month]
		if !ok {
			row = &ARRollforwardRow{
				Month:       month,
				Billings:    decimal.Zero,
				Collections: decimal.Zero,
			}
			byMonth[month] = row
		}
		row.Billings = row.Billings.Add(line.Debit)
		row.Collections = row.Collections.Add(line.Credit)
		row.NLines++
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	out := &ARRollforwardOutput{EndingBalance: input.OpeningBalance}
	balance := input.OpeningBalance
	for _, month := range months {
		row := byMonth[month]
		row.Beginning = balance
		row.Ending = balance.Add(row.Billings).Sub(row.Collections)
		balance = row.Ending
		out.Rows = append(out.Rows, row)
	}
	out.EndingBalance = balance

	return out
}

// rollforwardColumns is the column order of the roll-forward CSV.
var rollforwardColumns = []string{
	"month", "beginning", "billings", "collections", "ending", "n_lines",
}

// Table renders the roll-forward as a writable table.
func (o *ARRollforwardOutput) Table() valueobject.Table {
	t := valueobject.NewTable(rollforwardColumns)
	for _, r := range o.Rows {
		t.AppendRow([]string{
			r.Month, r.Beginning.String(), r.Billings.String(),
			r.Collections.String(), r.Ending.String(), strconv.Itoa(r.NLines),
		})
	}
	return t
}
