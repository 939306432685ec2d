package table

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layouts without an offset are interpreted in the location passed to ParseTime
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// ParseTime converts every value of the named column into a time.Time.
// Strings are read as ISO-8601 timestamps, numbers as Unix seconds and null as the zero time.
// A nil location means UTC.
func (t *Table) ParseTime(column string, loc *time.Location) error {
	if !t.HasColumn(column) {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	j := t.index[column]
	if loc == nil {
		loc = time.UTC
	}

	parsed := make([]time.Time, len(t.rows))
	for i, row := range t.rows {
		ts, err := ParseTimestamp(row[j], loc)
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", column, i, err)
		}
		parsed[i] = ts
	}

	// Only mutate once every value parsed
	for i, row := range t.rows {
		row[j] = parsed[i]
	}
	return nil
}

// ParseTimestamp converts a single decoded JSON value into a time.Time
func ParseTimestamp(v any, loc *time.Location) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return val, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return time.Time{}, fmt.Errorf("%w: %v is not a timestamp", ErrTimeParse, val)
		}
		sec, frac := math.Modf(val)
		return time.Unix(int64(sec), int64(frac*1e9)).In(loc), nil
	case int64:
		return time.Unix(val, 0).In(loc), nil
	case int:
		return time.Unix(int64(val), 0).In(loc), nil
	case string:
		return parseTimeString(val, loc)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrTimeParse, v, v)
	}
}

func parseTimeString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a timestamp", ErrTimeParse, s)
}
