package normalize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

func TestPassthroughApply(t *testing.T) {
	a := NewPassthroughAdapter()

	t.Run("accepts canonical headers in any order", func(t *testing.T) {
		input := valueobject.NewTable([]string{"normal_side", "account_type", "account_id", "account_name"})
		input.AppendRow([]string{"debit", "asset", "1000", "Cash"})

		got, err := a.Apply(valueobject.TableChartOfAccounts, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got.Columns, valueobject.ChartOfAccountsColumns) {
			t.Errorf("expected canonical order, got %v", got.Columns)
		}
		want := []string{"1000", "Cash", "asset", "debit"}
		if !reflect.DeepEqual(got.Rows[0], want) {
			t.Errorf("expected %v, got %v", want, got.Rows[0])
		}
	})

	t.Run("does not modify values", func(t *testing.T) {
		input := valueobject.NewTable(valueobject.GLJournalColumns)
		input.AppendRow([]string{"t1", "2024-01-05", "inv-1", "Sale", "1000", "$1,234.00", ""})

		got, err := a.Apply(valueobject.TableGLJournal, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Rows[0][5] != "$1,234.00" {
			t.Errorf("expected value untouched, got %q", got.Rows[0][5])
		}
	})

	t.Run("keeps extra columns after canonical ones", func(t *testing.T) {
		input := valueobject.NewTable([]string{"department", "account_id", "account_name", "account_type", "normal_side"})
		input.AppendRow([]string{"ops", "1000", "Cash", "asset", "debit"})

		got, err := a.Apply(valueobject.TableChartOfAccounts, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantColumns := []string{"account_id", "account_name", "account_type", "normal_side", "department"}
		if !reflect.DeepEqual(got.Columns, wantColumns) {
			t.Errorf("expected %v, got %v", wantColumns, got.Columns)
		}
		if got.Rows[0][4] != "ops" {
			t.Errorf("expected ops, got %q", got.Rows[0][4])
		}
	})

	t.Run("rejects non-canonical headers", func(t *testing.T) {
		input := valueobject.NewTable([]string{"Account ID", "Account Name", "account_type", "normal_side"})

		_, err := a.Apply(valueobject.TableChartOfAccounts, input)
		if !errors.Is(err, domainerror.ErrAdapterInput) {
			t.Fatalf("expected ErrAdapterInput, got %v", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, "account_id") {
			t.Errorf("expected message to name the missing column, got %q", msg)
		}
		if !strings.Contains(msg, "Account ID") {
			t.Errorf("expected message to echo the found headers, got %q", msg)
		}
	})
}
