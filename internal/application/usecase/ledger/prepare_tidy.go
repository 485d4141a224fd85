package ledger

import (
	"fmt"

	"github.com/trackd-analytics/byod/internal/domain/entity"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// PrepareTidyInput carries the two canonical tables of a GL dataset.
type PrepareTidyInput struct {
	ChartOfAccounts valueobject.Table
	GLJournal       valueobject.Table
}

// PrepareTidyOutput is the tidy ledger: every journal line with its derived
// identifier, resolved normal side and sign-aligned amount.
type PrepareTidyOutput struct {
	Lines    []*entity.TidyLine
	Accounts map[string]entity.Account

	// ExtraColumns preserves the input order of passthrough columns so
	// CSV output can keep them stable.
	ExtraColumns []string
}

// PrepareTidyUseCase implements the core ETL transform: it joins the raw
// journal to the chart of accounts, synthesizes stable line identifiers,
// and aligns amounts to each account's normal balance side.
type PrepareTidyUseCase struct{}

// NewPrepareTidyUseCase creates a new PrepareTidyUseCase instance.
func NewPrepareTidyUseCase() *PrepareTidyUseCase {
	return &PrepareTidyUseCase{}
}

// Execute derives the tidy ledger. The transform is deterministic:
// identical input, including row order, yields identical output and
// identical gl_line_id values — downstream reconciliation joins on them.
// Bad data (unresolved accounts, unparseable values) fails loudly; nothing
// is coerced to zero or dropped.
func (uc *PrepareTidyUseCase) Execute(input PrepareTidyInput) (*PrepareTidyOutput, error) {
	accounts, err := accountsFromTable(input.ChartOfAccounts)
	if err != nil {
		return nil, err
	}
	journal, extraColumns, err := journalFromTable(input.GLJournal)
	if err != nil {
		return nil, err
	}

	// Referential integrity first: every account_id must resolve before
	// any arithmetic happens.
	var unknown []string
	seen := make(map[string]bool)
	for _, line := range journal {
		if _, ok := accounts[line.AccountID]; !ok && !seen[line.AccountID] {
			seen[line.AccountID] = true
			unknown = append(unknown, line.AccountID)
		}
	}
	if len(unknown) > 0 {
		return nil, domainerror.NewUnknownAccountsError(unknown)
	}

	out := &PrepareTidyOutput{
		Lines:        make([]*entity.TidyLine, 0, len(journal)),
		Accounts:     accounts,
		ExtraColumns: extraColumns,
	}

	// Position restarts at 1 for each distinct txn_id, assigned in input
	// order; no pre-existing line-number column is consulted.
	position := make(map[string]int)
	for _, line := range journal {
		position[line.TxnID]++
		account := accounts[line.AccountID]
		side := account.ResolvedNormalSide()

		rawAmount := line.Debit.Sub(line.Credit)
		amount := rawAmount
		if side != entity.NormalSideDebit {
			amount = rawAmount.Neg()
		}

		docID := line.DocID
		if docID == "" {
			docID = line.TxnID
		}

		out.Lines = append(out.Lines, &entity.TidyLine{
			GLLineID:    fmt.Sprintf("%s-%d", line.TxnID, position[line.TxnID]),
			TxnID:       line.TxnID,
			Date:        line.Date,
			DocID:       docID,
			Description: line.Description,
			AccountID:   line.AccountID,
			AccountName: account.AccountName,
			AccountType: account.AccountType,
			NormalSide:  side,
			Debit:       line.Debit,
			Credit:      line.Credit,
			RawAmount:   rawAmount,
			Amount:      amount,
			Extras:      line.Extras,
		})
	}

	return out, nil
}

// tidyColumns is the canonical column order of the tidy ledger CSV.
var tidyColumns = []string{
	"gl_line_id", "txn_id", "date", "doc_id", "description",
	"account_id", "account_name", "account_type", "normal_side",
	"debit", "credit", "raw_amount", "amount",
}

// Table renders the tidy ledger as a writable table, canonical columns
// first and passthrough extras after them in their input order.
func (o *PrepareTidyOutput) Table() valueobject.Table {
	columns := append(append([]string(nil), tidyColumns...), o.ExtraColumns...)
	t := valueobject.NewTable(columns)
	for _, l := range o.Lines {
		row := []string{
			l.GLLineID, l.TxnID, l.Date.Format(dateLayout), l.DocID, l.Description,
			l.AccountID, l.AccountName, string(l.AccountType), string(l.NormalSide),
			l.Debit.String(), l.Credit.String(), l.RawAmount.String(), l.Amount.String(),
		}
		for _, col := range o.ExtraColumns {
			row = append(row, l.Extras[col])
		}
		t.AppendRow(row)
	}
	return t
}
