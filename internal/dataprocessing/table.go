package dataprocessing

import (
	"sort"
	"strconv"
	"time"

	"telcli/internal/temporal"
)

// Table is an in-memory tabular result. Columns are ordered and rows are
// positional; a cell may be empty when its source sheet never had the
// column. Tables replace the intermediate files the processing flow would
// otherwise write and re-read.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates a table with the given columns and no rows.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a column when missing, padding existing rows with
// empty cells, and returns its index either way.
func (t *Table) AddColumn(name string) int {
	if idx := t.ColumnIndex(name); idx >= 0 {
		return idx
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Columns) - 1
}

// AppendRow adds one row, padding or truncating to the column count.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// AppendTable appends another table's rows, aligning columns by name.
// Columns the receiver lacks are added; cells the other table lacks stay
// empty. Row order is preserved.
func (t *Table) AppendTable(other *Table) {
	if other.IsEmpty() {
		return
	}

	mapping := make([]int, len(other.Columns))
	for i, col := range other.Columns {
		mapping[i] = t.AddColumn(col)
	}

	for _, srcRow := range other.Rows {
		row := make([]string, len(t.Columns))
		for i, cell := range srcRow {
			if i < len(mapping) {
				row[mapping[i]] = cell
			}
		}
		t.Rows = append(t.Rows, row)
	}
}

// EnsureConstantColumn stamps every row with a fixed value under the given
// column, unless the column already exists.
func (t *Table) EnsureConstantColumn(name, value string) {
	if t.ColumnIndex(name) >= 0 {
		return
	}
	idx := t.AddColumn(name)
	for i := range t.Rows {
		t.Rows[i][idx] = value
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Cell sort keys. Timestamp columns hold whatever the source sheets held,
// so ordering is by type class first: parseable times, then numbers, then
// text, then empty cells last.
const (
	keyTime = iota
	keyNumber
	keyText
	keyEmpty
)

type sortKey struct {
	kind int
	ts   time.Time
	num  float64
	text string
}

func cellSortKey(cell string) sortKey {
	if cell == "" {
		return sortKey{kind: keyEmpty}
	}
	if ts, ok := temporal.ParseTimestamp(cell); ok {
		return sortKey{kind: keyTime, ts: ts}
	}
	if num, err := strconv.ParseFloat(cell, 64); err == nil {
		return sortKey{kind: keyNumber, num: num}
	}
	return sortKey{kind: keyText, text: cell}
}

func (k sortKey) less(o sortKey) bool {
	if k.kind != o.kind {
		return k.kind < o.kind
	}
	switch k.kind {
	case keyTime:
		return k.ts.Before(o.ts)
	case keyNumber:
		return k.num < o.num
	case keyText:
		return k.text < o.text
	default:
		return false
	}
}

// SortByColumn stably sorts rows ascending by the named column. Ties keep
// their original relative order. A missing column is a no-op.
func (t *Table) SortByColumn(name string) {
	idx := t.ColumnIndex(name)
	if idx < 0 || len(t.Rows) < 2 {
		return
	}

	keys := make([]sortKey, len(t.Rows))
	for i, row := range t.Rows {
		cell := ""
		if idx < len(row) {
			cell = row[idx]
		}
		keys[i] = cellSortKey(cell)
	}

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].less(keys[order[b]])
	})

	sorted := make([][]string, len(t.Rows))
	for i, from := range order {
		sorted[i] = t.Rows[from]
	}
	t.Rows = sorted
}
