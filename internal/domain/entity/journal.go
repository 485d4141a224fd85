package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine represents one raw general-ledger journal line after its
// monetary fields have been parsed. A journal line is one leg of a
// double-entry transaction; lines sharing a TxnID form one transaction.
type JournalLine struct {
	TxnID       string
	Date        time.Time
	DocID       string // may be empty; tidy defaults it to TxnID
	Description string
	AccountID   string

	// Debit and Credit are non-negative. When the export used a dc/amount
	// pair the mapping layer folds it into this shape before the tidy
	// transform runs.
	Debit  decimal.Decimal
	Credit decimal.Decimal

	// Extras holds unrecognized passthrough columns in their original
	// relative order, keyed by header name.
	Extras map[string]string
}

// TidyLine is a journal line augmented with the canonical derived fields:
// a stable per-line identifier, the resolved normal side, and amounts
// aligned to the account's natural balance direction.
type TidyLine struct {
	GLLineID    string // "{txn_id}-{n}", n 1-based in input order per txn
	TxnID       string
	Date        time.Time
	DocID       string
	Description string
	AccountID   string
	AccountName string
	AccountType AccountType
	NormalSide  NormalSide

	Debit  decimal.Decimal
	Credit decimal.Decimal

	// RawAmount is debit - credit, independent of the account's side.
	RawAmount decimal.Decimal

	// Amount is RawAmount when the account's normal side is debit and
	// -RawAmount otherwise, so a positive amount always means the
	// transaction increased the account's natural balance.
	Amount decimal.Decimal

	Extras map[string]string
}

// Month returns the line's date truncated to year-month, formatted YYYY-MM.
func (l TidyLine) Month() string {
	return l.Date.Format("2006-01")
}

// MonthlySummary aggregates tidy lines by (month, account, normal side).
type MonthlySummary struct {
	Month       string // YYYY-MM
	AccountID   string
	NormalSide  NormalSide
	AccountName string
	AccountType AccountType

	Debit     decimal.Decimal
	Credit    decimal.Decimal
	NetChange decimal.Decimal // sum of Amount
	NLines    int
}
