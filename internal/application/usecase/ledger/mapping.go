// Package ledger contains the GL tidy transform and its aggregations.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// dateLayout is the canonical date format of normalized tables.
const dateLayout = "2006-01-02"

// accountsFromTable parses a canonical chart-of-accounts table. The
// normal_side column may be absent or blank; resolution happens per line
// in the tidy transform. Duplicate account ids and unknown account types
// are data-quality errors.
func accountsFromTable(t valueobject.Table) (map[string]entity.Account, error) {
	if missing := t.MissingColumns([]string{"account_id", "account_name", "account_type"}); len(missing) > 0 {
		return nil, domainerror.NewMissingColumnsError(valueobject.TableChartOfAccounts, missing, t.Columns)
	}

	accounts := make(map[string]entity.Account, t.Len())
	for i := 0; i < t.Len(); i++ {
		id := strings.TrimSpace(t.Get(i, "account_id"))
		if id == "" {
			continue
		}
		if _, seen := accounts[id]; seen {
			return nil, domainerror.NewDuplicateAccountError(id)
		}

		accountType, ok := entity.ParseAccountType(t.Get(i, "account_type"))
		if !ok {
			return nil, domainerror.NewInvalidAccountTypeError(id, t.Get(i, "account_type"))
		}
		side, ok := entity.ParseNormalSide(t.Get(i, "normal_side"))
		if !ok {
			return nil, domainerror.NewValueCoercionError(valueobject.TableChartOfAccounts, "normal_side", i+1, t.Get(i, "normal_side"), nil)
		}

		accounts[id] = entity.Account{
			AccountID:   id,
			AccountName: strings.TrimSpace(t.Get(i, "account_name")),
			AccountType: accountType,
			NormalSide:  side,
		}
	}
	return accounts, nil
}

// journalColumns are the columns the journal mapping consumes; everything
// else on the table is a passthrough extra.
var journalColumns = map[string]bool{
	"txn_id": true, "date": true, "doc_id": true, "description": true,
	"account_id": true, "debit": true, "credit": true, "dc": true, "amount": true,
}

// journalFromTable parses a GL journal table into journal lines. Both raw
// shapes are accepted: separate debit/credit columns, or a dc flag with a
// single amount. Money fields go through the same cleaning as the core_gl
// adapter, so the transform works on raw canonical-headed exports too.
// The returned slice of extra column names preserves input order.
func journalFromTable(t valueobject.Table) ([]*entity.JournalLine, []string, error) {
	if missing := t.MissingColumns([]string{"txn_id", "date", "account_id"}); len(missing) > 0 {
		return nil, nil, domainerror.NewMissingColumnsError(valueobject.TableGLJournal, missing, t.Columns)
	}

	hasDebitCredit := t.HasColumn("debit") || t.HasColumn("credit")
	hasDCAmount := t.HasColumn("dc") && t.HasColumn("amount")
	if !hasDebitCredit && !hasDCAmount {
		return nil, nil, domainerror.NewMissingColumnsError(valueobject.TableGLJournal, []string{"debit", "credit"}, t.Columns)
	}

	var extraColumns []string
	for _, col := range t.Columns {
		if !journalColumns[col] {
			extraColumns = append(extraColumns, col)
		}
	}

	lines := make([]*entity.JournalLine, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		date, err := time.Parse(dateLayout, strings.TrimSpace(t.Get(i, "date")))
		if err != nil {
			return nil, nil, domainerror.NewValueCoercionError(valueobject.TableGLJournal, "date", i+1, t.Get(i, "date"), err)
		}

		line := &entity.JournalLine{
			TxnID:       strings.TrimSpace(t.Get(i, "txn_id")),
			Date:        date,
			DocID:       strings.TrimSpace(t.Get(i, "doc_id")),
			Description: strings.TrimSpace(t.Get(i, "description")),
			AccountID:   strings.TrimSpace(t.Get(i, "account_id")),
		}

		if hasDebitCredit {
			line.Debit, err = parseMoneyField(t, i, "debit")
			if err != nil {
				return nil, nil, err
			}
			line.Credit, err = parseMoneyField(t, i, "credit")
			if err != nil {
				return nil, nil, err
			}
		} else {
			amount, err := parseMoneyField(t, i, "amount")
			if err != nil {
				return nil, nil, err
			}
			switch strings.ToLower(strings.TrimSpace(t.Get(i, "dc"))) {
			case "d", "dr", "debit":
				line.Debit = amount
			case "c", "cr", "credit":
				line.Credit = amount
			default:
				return nil, nil, domainerror.NewValueCoercionError(valueobject.TableGLJournal, "dc", i+1, t.Get(i, "dc"), nil)
			}
		}

		// A parenthesized debit is a negative debit, i.e. a credit; move
		// it across so the (debit, credit) pair stays non-negative while
		// raw_amount is unchanged.
		if line.Debit.IsNegative() {
			line.Credit = line.Credit.Add(line.Debit.Neg())
			line.Debit = decimal.Zero
		}
		if line.Credit.IsNegative() {
			line.Debit = line.Debit.Add(line.Credit.Neg())
			line.Credit = decimal.Zero
		}

		if len(extraColumns) > 0 {
			line.Extras = make(map[string]string, len(extraColumns))
			for _, col := range extraColumns {
				line.Extras[col] = t.Get(i, col)
			}
		}

		lines = append(lines, line)
	}
	return lines, extraColumns, nil
}

func parseMoneyField(t valueobject.Table, row int, column string) (decimal.Decimal, error) {
	if !t.HasColumn(column) {
		return decimal.Zero, nil
	}
	raw := t.Get(row, column)
	d, err := valueobject.ParseMoney(raw)
	if err != nil {
		return decimal.Zero, domainerror.NewValueCoercionError(valueobject.TableGLJournal, column, row+1, raw, err)
	}
	return d, nil
}
