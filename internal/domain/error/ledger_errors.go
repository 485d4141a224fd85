package error

import (
	"errors"
	"fmt"
	"strings"
)

// Ledger transform sentinel errors.
var (
	// ErrUnknownAccount is returned when a journal line references an
	// account_id with no chart-of-accounts row.
	ErrUnknownAccount = errors.New("account not found in chart of accounts")

	// ErrValueCoercion is returned when a monetary or date field cannot
	// be parsed after cleaning.
	ErrValueCoercion = errors.New("value cannot be coerced")

	// ErrDuplicateAccount is returned when the chart of accounts carries
	// the same account_id more than once.
	ErrDuplicateAccount = errors.New("duplicate account_id in chart of accounts")

	// ErrInvalidAccountType is returned for an account_type outside the
	// asset/liability/equity/revenue/expense enumeration.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// LedgerErrorCode defines error codes for ledger transform errors.
// Format: GL-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	ErrCodeUnknownAccount     LedgerErrorCode = "GL-010001"
	ErrCodeValueCoercion      LedgerErrorCode = "GL-010002"
	ErrCodeDuplicateAccount   LedgerErrorCode = "GL-010003"
	ErrCodeInvalidAccountType LedgerErrorCode = "GL-010004"
)

// LedgerError represents a data-quality error found by the tidy transform.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// maxReportedAccounts caps how many unresolved account ids one error names.
const maxReportedAccounts = 10

// NewUnknownAccountsError reports journal lines whose account_id does not
// resolve in the chart of accounts. The first few offenders are named; the
// data is never silently dropped or auto-corrected.
func NewUnknownAccountsError(ids []string) *LedgerError {
	shown := ids
	suffix := ""
	if len(shown) > maxReportedAccounts {
		suffix = fmt.Sprintf(" (and %d more)", len(shown)-maxReportedAccounts)
		shown = shown[:maxReportedAccounts]
	}
	return &LedgerError{
		Code: ErrCodeUnknownAccount,
		Message: fmt.Sprintf(
			"GL journal references account ids missing from the chart of accounts: %s%s\nHint: add the accounts to chart_of_accounts.csv or fix the journal export.",
			strings.Join(shown, ", "), suffix,
		),
		Err: ErrUnknownAccount,
	}
}

// NewValueCoercionError reports a field that is not coercible to its
// expected type, with enough row context to find it in the export.
func NewValueCoercionError(table, field string, row int, raw string, cause error) *LedgerError {
	detail := ""
	if cause != nil {
		detail = ": " + cause.Error()
	}
	return &LedgerError{
		Code: ErrCodeValueCoercion,
		Message: fmt.Sprintf(
			"%s row %d: field %q has value %q which cannot be parsed%s",
			table, row, field, raw, detail,
		),
		Err: ErrValueCoercion,
	}
}

// NewDuplicateAccountError reports an account_id declared more than once.
func NewDuplicateAccountError(accountID string) *LedgerError {
	return &LedgerError{
		Code: ErrCodeDuplicateAccount,
		Message: fmt.Sprintf(
			"chart of accounts declares account_id %q more than once\nHint: an account_id must map to exactly one name and type.",
			accountID,
		),
		Err: ErrDuplicateAccount,
	}
}

// NewInvalidAccountTypeError reports an account_type outside the enumeration.
func NewInvalidAccountTypeError(accountID, raw string) *LedgerError {
	return &LedgerError{
		Code: ErrCodeInvalidAccountType,
		Message: fmt.Sprintf(
			"account %q has account_type %q; expected one of asset, liability, equity, revenue, expense",
			accountID, raw,
		),
		Err: ErrInvalidAccountType,
	}
}
