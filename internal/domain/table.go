package domain

// Row holds one cell per table column, in column order. An empty cell is a
// missing value.
type Row []string

type Table struct {
	Columns []string
	Rows    []Row
}

func NewTable(columns []string, rows ...Row) *Table {
	return &Table{
		Columns: columns,
		Rows:    rows,
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}

	return -1, false
}

// Head returns a table sharing the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	return &Table{
		Columns: t.Columns,
		Rows:    t.Rows[:n],
	}
}

// Filter returns the rows whose mask entry is true, keeping their order.
// The mask must have one entry per row.
func (t *Table) Filter(mask []bool) *Table {
	rows := make([]Row, 0, len(t.Rows))
	for i, keep := range mask {
		if keep {
			rows = append(rows, t.Rows[i])
		}
	}

	return &Table{
		Columns: t.Columns,
		Rows:    rows,
	}
}

func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}

	return r[i]
}
