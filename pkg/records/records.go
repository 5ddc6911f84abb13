// Package records defines the untyped record model shared by the extract
// and cleansing layers.
//
// A Record is one raw source row: column name -> raw value, where a value is
// a string, a number, or nil. Records are produced once by the extract layer
// and treated as read-only afterwards; every later stage projects them into
// typed rows instead of mutating them.
package records

import (
	"strconv"
	"strings"
)

// Record is an untyped raw row keyed by column name.
type Record map[string]any

// Has reports whether the column exists in the record (even with a nil value).
func (r Record) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// String returns the column's value rendered as a string. Nil and missing
// columns yield "". Numeric values are formatted without an exponent.
func (r Record) String(col string) string {
	switch t := r[col].(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// Trimmed returns the column's string value with surrounding whitespace removed.
func (r Record) Trimmed(col string) string {
	return strings.TrimSpace(r.String(col))
}

// Int parses the column as an integer. The boolean is false for nil, missing,
// blank, or unparseable values. Float-typed values are accepted when integral.
func (r Record) Int(col string) (int, bool) {
	switch t := r[col].(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == float64(int(t)) {
			return int(t), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Float parses the column as a float64. The boolean is false for nil,
// missing, blank, or unparseable values.
func (r Record) Float(col string) (float64, bool) {
	switch t := r[col].(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
