package ledger

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// MonthlySummaryInput carries the tidy ledger to aggregate.
type MonthlySummaryInput struct {
	Lines []*entity.TidyLine
}

// MonthlySummaryOutput is the per-(month, account, normal side) aggregate.
// The grouping key is unique by construction and rows are ordered by
// (month, account_id, normal_side) so output is deterministic.
type MonthlySummaryOutput struct {
	Rows []*entity.MonthlySummary
}

// MonthlySummaryUseCase groups tidy GL lines into monthly debit/credit/
// net-change summaries.
type MonthlySummaryUseCase struct{}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase() *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{}
}

type summaryKey struct {
	month      string
	accountID  string
	normalSide entity.NormalSide
}

// Execute aggregates the tidy ledger by month and account. Under the
// sign-alignment invariant net_change is non-negative for a healthy
// ledger, but nothing here enforces that: detecting a negative net change
// is the user's signal, not our failure.
func (uc *MonthlySummaryUseCase) Execute(input MonthlySummaryInput) *MonthlySummaryOutput {
	groups := make(map[summaryKey]*entity.MonthlySummary)
	for _, line := range input.Lines {
		key := summaryKey{
			month:      line.Month(),
			accountID:  line.AccountID,
			normalSide: line.NormalSide,
		}
		row, ok := groups[key]
		if !ok {
			row = &entity.MonthlySummary{
				Month:       key.month,
				AccountID:   key.accountID,
				NormalSide:  key.normalSide,
				AccountName: line.AccountName,
				AccountType: line.AccountType,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
				NetChange:   decimal.Zero,
			}
			groups[key] = row
		}
		row.Debit = row.Debit.Add(line.Debit)
		row.Credit = row.Credit.Add(line.Credit)
		row.NetChange = row.NetChange.Add(line.Amount)
		row.NLines++
	}

	rows := make([]*entity.MonthlySummary, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		if rows[i].AccountID != rows[j].AccountID {
			return rows[i].AccountID < rows[j].AccountID
		}
		return rows[i].NormalSide < rows[j].NormalSide
	})

	return &MonthlySummaryOutput{Rows: rows}
}

// monthlyColumns is the canonical column order of the monthly summary CSV.
var monthlyColumns = []string{
	"month", "account_id", "normal_side", "account_name", "account_type",
	"debit", "credit", "net_change", "n_lines",
}

// Table renders the summary as a writable table.
func (o *MonthlySummaryOutput) Table() valueobject.Table {
	t := valueobject.NewTable(monthlyColumns)
	for _, r := range o.Rows {
		t.AppendRow([]string{
			r.Month, r.AccountID, string(r.NormalSide), r.AccountName, string(r.AccountType),
			r.Debit.String(), r.Credit.String(), r.NetChange.String(), strconv.Itoa(r.NLines),
		})
	}
	return t
}
