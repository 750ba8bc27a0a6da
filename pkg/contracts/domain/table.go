package domain

// Row maps a column name to its raw cell value. An empty string is a
// missing value; both CSV and Excel sources surface blanks that way.
type Row map[string]string

// Table is an ordered sequence of rows sharing one header. Row order is
// significant: cleaning and aggregation are order-stable.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: make([]Row, 0)}
}

// HasColumn reports whether the header contains the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row to the table keeping insertion order.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table holds no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Clone returns a deep copy of the table. Cleaning steps operate on
// copies so callers keep the raw input for auditing.
func (t Table) Clone() Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}
