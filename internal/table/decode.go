package table

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// FromColumns builds a table from a JSON object mapping column name to an array of values.
// Columns keep the order in which they appear in the document.
func FromColumns(raw []byte) (*Table, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	var (
		names  []string
		series [][]gjson.Result
		length = -1
		badErr error
	)

	obj.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			badErr = fmt.Errorf("%w: column %q is not an array", ErrMalformed, key.String())
			return false
		}
		values := value.Array()
		if length >= 0 && len(values) != length {
			badErr = fmt.Errorf("%w: column %q has %d values, expected %d", ErrRaggedColumns, key.String(), len(values), length)
			return false
		}
		length = len(values)
		names = append(names, key.String())
		series = append(series, values)
		return true
	})
	if badErr != nil {
		return nil, badErr
	}

	t := New(names...)
	if length <= 0 {
		return t, nil
	}

	// Transpose column arrays into rows
	t.rows = make([][]any, length)
	for i := 0; i < length; i++ {
		row := make([]any, len(names))
		for j := range names {
			row[j] = series[j][i].Value()
		}
		t.rows[i] = row
	}

	return t, nil
}

// FromRow builds a one-row table from a flat JSON object. Every key becomes a column.
func FromRow(raw []byte) (*Table, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	var (
		names  []string
		values []any
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		names = append(names, key.String())
		values = append(values, value.Value())
		return true
	})

	t := New(names...)
	if err := t.AppendRow(values...); err != nil {
		return nil, err
	}
	return t, nil
}

func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}
	return obj, nil
}
