// Package valueobject contains domain value objects for the BYOD pipeline.
package valueobject

// Table is an ordered, header-addressed table of strings. It is the shape
// every CSV passes through between the loader, the adapters and the writer.
// Column order is significant and preserved end to end; values are kept as
// strings so unrecognized columns survive normalization unmodified.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) Table {
	return Table{Columns: append([]string(nil), columns...)}
}

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// MissingColumns returns the subset of required that is absent, in the
// order requested.
func (t Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Get returns the value of the named column in row i, or "" when the
// column does not exist.
func (t Table) Get(i int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// AppendRow adds a row. The row must align with Columns; short rows are
// padded with empty strings so ragged CSV input cannot cause index panics.
func (t *Table) AppendRow(row []string) {
	for len(row) < len(t.Columns) {
		row = append(row, "")
	}
	t.Rows = append(t.Rows, row[:len(t.Columns)])
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Reorder returns a copy of the table with the named columns first, in the
// given order, and every remaining column after them in its original
// relative order. Named columns that do not exist are skipped.
func (t Table) Reorder(first []string) Table {
	var order []int
	taken := make(map[int]bool)
	for _, name := range first {
		if idx := t.ColumnIndex(name); idx >= 0 {
			order = append(order, idx)
			taken[idx] = true
		}
	}
	for i := range t.Columns {
		if !taken[i] {
			order = append(order, i)
		}
	}

	out := Table{Columns: make([]string, len(order))}
	for i, idx := range order {
		out.Columns[i] = t.Columns[idx]
	}
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		newRow := make([]string, len(order))
		for i, idx := range order {
			if idx < len(row) {
				newRow[i] = row[idx]
			}
		}
		out.Rows[r] = newRow
	}
	return out
}
