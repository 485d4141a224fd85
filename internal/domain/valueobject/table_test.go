package valueobject

import (
	"reflect"
	"testing"
)

func TestTableMissingColumns(t *testing.T) {
	table := NewTable([]string{"txn_id", "date", "amount"})

	t.Run("reports absent columns in requested order", func(t *testing.T) {
		missing := table.MissingColumns([]string{"account_id", "date", "debit"})
		want := []string{"account_id", "debit"}
		if !reflect.DeepEqual(missing, want) {
			t.Errorf("expected %v, got %v", want, missing)
		}
	})

	t.Run("returns nil when everything is present", func(t *testing.T) {
		if missing := table.MissingColumns([]string{"txn_id", "amount"}); missing != nil {
			t.Errorf("expected nil, got %v", missing)
		}
	})
}

func TestTableAppendRowPadsShortRows(t *testing.T) {
	table := NewTable([]string{"a", "b", "c"})
	table.AppendRow([]string{"1"})

	if got := table.Get(0, "c"); got != "" {
		t.Errorf("expected empty pad value, got %q", got)
	}
	if got := table.Get(0, "a"); got != "1" {
		t.Errorf("expected 1, got %q", got)
	}
}

func TestTableGetUnknownColumn(t *testing.T) {
	table := NewTable([]string{"a"})
	table.AppendRow([]string{"x"})

	if got := table.Get(0, "nope"); got != "" {
		t.Errorf("expected empty string for unknown column, got %q", got)
	}
}

func TestTableReorder(t *testing.T) {
	table := NewTable([]string{"extra1", "date", "txn_id", "extra2"})
	table.AppendRow([]string{"e1", "2024-01-05", "t1", "e2"})

	got := table.Reorder([]string{"txn_id", "date"})

	wantColumns := []string{"txn_id", "date", "extra1", "extra2"}
	if !reflect.DeepEqual(got.Columns, wantColumns) {
		t.Fatalf("expected columns %v, got %v", wantColumns, got.Columns)
	}
	wantRow := []string{"t1", "2024-01-05", "e1", "e2"}
	if !reflect.DeepEqual(got.Rows[0], wantRow) {
		t.Errorf("expected row %v, got %v", wantRow, got.Rows[0])
	}
}

func TestTableReorderSkipsUnknownNames(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	table.AppendRow([]string{"1", "2"})

	got := table.Reorder([]string{"missing", "b"})

	wantColumns := []string{"b", "a"}
	if !reflect.DeepEqual(got.Columns, wantColumns) {
		t.Errorf("expected columns %v, got %v", wantColumns, got.Columns)
	}
}
