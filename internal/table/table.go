package table

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist in the table
	ErrColumnNotFound = errors.New("column not found")
	// ErrRaggedColumns is returned when column-oriented data has columns of different lengths
	ErrRaggedColumns = errors.New("columns have different lengths")
	// ErrMalformed is returned when the JSON does not have the expected table shape
	ErrMalformed = errors.New("malformed table data")
	// ErrTimeParse is returned when a time column value cannot be parsed as a timestamp
	ErrTimeParse = errors.New("time parse error")
)

// Table is an ordered set of named columns with one slice of values per row.
// Values keep their decoded JSON types (float64, string, bool, nil, map[string]any, []any)
// except for columns converted with ParseTime, which hold time.Time.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty table with the given column names
func New(columns ...string) *Table {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

func (t *Table) addColumn(name string) {
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// AppendRow adds a row. The number of values must match the number of columns.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: row has %d values, table has %d columns", ErrMalformed, len(values), len(t.columns))
	}
	row := make([]any, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has a column with the given name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the row at position i as a column name to value map
func (t *Table) Row(i int) map[string]any {
	out := make(map[string]any, len(t.columns))
	for j, c := range t.columns {
		out[c] = t.rows[i][j]
	}
	return out
}

// Value returns the value at row i in the named column
func (t *Table) Value(i int, column string) (any, bool) {
	j, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i][j], true
}

// Column returns a copy of every value in the named column
func (t *Table) Column(name string) ([]any, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]any, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, nil
}

// MarshalJSON encodes the table as {"columns": [...], "rows": [[...], ...]} so column order survives
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := t.rows
	if rows == nil {
		rows = [][]any{}
	}
	return json.Marshal(struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{
		Columns: t.columns,
		Rows:    rows,
	})
}
