package table

import "sort"

// ColumnRole classifies a column within one dataset. The same column name may
// carry a different role in another dataset, so roles are always recomputed
// from rows and never persisted.
type ColumnRole string

const (
	RoleNumeric     ColumnRole = "numeric"
	RoleDate        ColumnRole = "date"
	RoleCategorical ColumnRole = "categorical"
)

// ColumnRegistry is the inspectable "guessed schema" for one dataset: the
// classifier produces it once per dataset and every other component receives
// it explicitly instead of re-deriving heuristics at each call site.
type ColumnRegistry struct {
	Roles map[string]ColumnRole `json:"roles"`

	// ChartExcluded marks columns (free-text address fields and similar)
	// that stay categorical but must never be auto-picked for charting.
	ChartExcluded map[string]bool `json:"chart_excluded,omitempty"`
}

// NewColumnRegistry creates an empty registry
func NewColumnRegistry() ColumnRegistry {
	return ColumnRegistry{
		Roles:         make(map[string]ColumnRole),
		ChartExcluded: make(map[string]bool),
	}
}

// Role returns the role for a column and whether the column is known.
func (cr ColumnRegistry) Role(column string) (ColumnRole, bool) {
	role, ok := cr.Roles[column]
	return role, ok
}

// ColumnsWithRole lists columns carrying the given role in sorted name order,
// so selection among equal candidates is deterministic regardless of map order.
func (cr ColumnRegistry) ColumnsWithRole(role ColumnRole) []string {
	var cols []string
	for name, r := range cr.Roles {
		if r == role {
			cols = append(cols, name)
		}
	}
	sort.Strings(cols)
	return cols
}

// IsChartExcluded reports whether a column is barred from auto-selection.
func (cr ColumnRegistry) IsChartExcluded(column string) bool {
	return cr.ChartExcluded[column]
}
