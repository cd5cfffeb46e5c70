package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a single uploaded record: column name to raw cell value. Values arrive
// as strings, numbers, or nil depending on the decoder; no two rows are required
// to share a key set.
type Row map[string]interface{}

// Cell returns the raw value for a column, nil when the column is absent.
func (r Row) Cell(column string) interface{} {
	if v, ok := r[column]; ok {
		return v
	}
	return nil
}

// CellString renders a cell as a trimmed string. Missing and nil cells render
// as the empty string so callers can treat both uniformly.
func (r Row) CellString(column string) string {
	return CellToString(r.Cell(column))
}

// IsEmptyCell reports whether the column is missing, nil, or blank.
func (r Row) IsEmptyCell(column string) bool {
	return r.CellString(column) == ""
}

// Columns returns the column names present in this row.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	return cols
}

// CellToString converts an arbitrary cell value to string safely
func CellToString(val interface{}) string {
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
