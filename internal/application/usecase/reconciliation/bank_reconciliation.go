// Package reconciliation contains downstream consumers of the tidy ledger:
// bank reconciliation and the AR roll-forward. Both join on fields the
// tidy transform guarantees to be stable (gl_line_id, dates, amounts).
package reconciliation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

// BankLine is one row of a bank statement export. Amount is signed from
// the bank's perspective: deposits positive, withdrawals negative.
type BankLine struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// BankReconciliationInput pairs the tidy ledger's cash lines with a bank
// statement.
type BankReconciliationInput struct {
	Lines         []*entity.TidyLine
	CashAccountID string
	Statement     valueobject.Table
}

// MatchedItem links a ledger line to the statement row it cleared against.
type MatchedItem struct {
	GLLineID     string
	StatementRow int // 1-based data row in the statement
	Date         time.Time
	Amount       decimal.Decimal
}

// BankReconciliationOutput reports matches and the residual differences.
type BankReconciliationOutput struct {
	Matched         []MatchedItem
	UnmatchedLedger []*entity.TidyLine
	UnmatchedBank   []BankLine

	LedgerTotal decimal.Decimal // sum of cash raw_amount
	BankTotal   decimal.Decimal // sum of statement amounts
	Difference  decimal.Decimal // LedgerTotal - BankTotal
}

// BankReconciliationUseCase matches cash-account ledger activity against a
// bank statement by date and amount.
type BankReconciliationUseCase struct{}

// NewBankReconciliationUseCase creates a new BankReconciliationUseCase instance.
func NewBankReconciliationUseCase() *BankReconciliationUseCase {
	return &BankReconciliationUseCase{}
}

// Execute reconciles deterministically: statement rows are walked in input
// order and each takes the first unmatched cash line with the same date
// and amount. Cash raw_amount compares directly to the bank's sign
// convention (a debit to cash is a deposit).
func (uc *BankReconciliationUseCase) Execute(input BankReconciliationInput) (*BankReconciliationOutput, error) {
	statement, err := bankLinesFromTable(input.Statement)
	if err != nil {
		return nil, err
	}

	var cash []*entity.TidyLine
	for _, line := range input.Lines {
		if line.AccountID == input.CashAccountID {
			cash = append(cash, line)
		}
	}

	out := &BankReconciliationOutput{
		LedgerTotal: decimal.Zero,
		BankTotal:   decimal.Zero,
	}
	for _, line := range cash {
		out.LedgerTotal = out.LedgerTotal.Add(line.RawAmount)
	}

	used := make([]bool, len(cash))
	for i, bank := range statement {
		out.BankTotal = out.BankTotal.Add(bank.Amount)

		matched := false
		for j, line := range cash {
			if used[j] {
				continue
			}
			if line.Date.Equal(bank.Date) && line.RawAmount.Equal(bank.Amount) {
				used[j] = true
				matched = true
				out.Matched = append(out.Matched, MatchedItem{
					GLLineID:     line.GLLineID,
					StatementRow: i + 1,
					Date:         bank.Date,
					Amount:       bank.Amount,
				})
				break
			}
		}
		if !matched {
			out.UnmatchedBank = append(out.UnmatchedBank, bank)
		}
	}

	for j, line := range cash {
		if !used[j] {
			out.UnmatchedLedger = append(out.UnmatchedLedger, line)
		}
	}

	out.Difference = out.LedgerTotal.Sub(out.BankTotal)
	return out, nil
}

// bankStatementColumns are required of a statement export.
var bankStatementColumns = []string{"date", "description", "amount"}

func bankLinesFromTable(t valueobject.Table) ([]BankLine, error) {
	if missing := t.MissingColumns(bankStatementColumns); len(missing) > 0 {
		return nil, domainerror.NewMissingColumnsError("bank_statement", missing, t.Columns)
	}

	lines := make([]BankLine, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		date, err := time.Parse(dateLayout, strings.TrimSpace(t.Get(i, "date")))
		if err != nil {
			return nil, domainerror.NewValueCoercionError("bank_statement", "date", i+1, t.Get(i, "date"), err)
		}
		amount, err := valueobject.ParseMoney(t.Get(i, "amount"))
		if err != nil {
			return nil, domainerror.NewValueCoercionError("bank_statement", "amount", i+1, t.Get(i, "amount"), err)
		}
		lines = append(lines, BankLine{
			Date:        date,
			Description: strings.TrimSpace(t.Get(i, "description")),
			Amount:      amount,
		})
	}
	return lines, nil
}
