// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// NormalSide is the side on which an account's balance naturally increases.
type NormalSide string

const (
	NormalSideDebit  NormalSide = "debit"
	NormalSideCredit NormalSide = "credit"
)

// ParseAccountType parses a chart-of-accounts type value. Input is
// case-insensitive; the returned value is the canonical lowercase form.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(strings.ToLower(strings.TrimSpace(s))) {
	case AccountTypeAsset:
		return AccountTypeAsset, true
	case AccountTypeLiability:
		return AccountTypeLiability, true
	case AccountTypeEquity:
		return AccountTypeEquity, true
	case AccountTypeRevenue:
		return AccountTypeRevenue, true
	case AccountTypeExpense:
		return AccountTypeExpense, true
	}
	return "", false
}

// ParseNormalSide parses a normal-side value. Input is case-insensitive.
// An empty value returns ok with an empty side; the caller decides whether
// to infer it from the account type.
func ParseNormalSide(s string) (NormalSide, bool) {
	switch NormalSide(strings.ToLower(strings.TrimSpace(s))) {
	case NormalSideDebit:
		return NormalSideDebit, true
	case NormalSideCredit:
		return NormalSideCredit, true
	case "":
		return "", true
	}
	return "", false
}

// NormalSideFor returns the conventional normal side for an account type:
// assets and expenses increase with debits, everything else with credits.
func NormalSideFor(t AccountType) NormalSide {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalSideDebit
	default:
		return NormalSideCredit
	}
}

// Account represents one row of the chart of accounts.
type Account struct {
	AccountID   string
	AccountName string
	AccountType AccountType

	// NormalSide is the declared side, or the inferred one when the
	// chart of accounts omitted it.
	NormalSide NormalSide
}

// ResolvedNormalSide returns the declared normal side, falling back to the
// convention for the account's type.
func (a Account) ResolvedNormalSide() NormalSide {
	if a.NormalSide != "" {
		return a.NormalSide
	}
	return NormalSideFor(a.AccountType)
}
