package table

import (
	"fmt"
	"sort"
	"strings"

	"pulseboard/domain/core"
)

// DateRange bounds rows by canonical date, inclusive on both ends. Empty
// strings mean unbounded on that side.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsEmpty reports whether the range constrains nothing.
func (r DateRange) IsEmpty() bool {
	return r.Start == "" && r.End == ""
}

// FilterState is the composable filter consumed by every chart and KPI.
// It is replaced wholesale, never mutated in place, which keeps every derived
// view a pure function of (rows, state).
type FilterState struct {
	DateRange DateRange `json:"date_range"`

	// Months holds canonical YYYY-MM keys.
	Months []string `json:"months,omitempty"`

	// Values maps a column name to the selected values for that column:
	// OR within a column, AND across columns.
	Values map[string][]string `json:"values,omitempty"`

	// DrillDown holds exact-match constraints added by chart click-through,
	// layered on top of the global selections and cleared explicitly.
	DrillDown map[string]string `json:"drill_down,omitempty"`
}

// EmptyFilterState returns the identity filter.
func EmptyFilterState() FilterState {
	return FilterState{}
}

// Active reports whether any component constrains the row set. Derived on
// demand, never tracked as a separate flag.
func (s FilterState) Active() bool {
	if !s.DateRange.IsEmpty() {
		return true
	}
	if len(s.Months) > 0 {
		return true
	}
	for _, vals := range s.Values {
		if len(vals) > 0 {
			return true
		}
	}
	return len(s.DrillDown) > 0
}

// Validate rejects states that no UI interaction can legally produce. This is
// the caller-contract-violation path; dirty row data never reaches it.
func (s FilterState) Validate() error {
	if s.DateRange.Start != "" && s.DateRange.End != "" && s.DateRange.Start > s.DateRange.End {
		return core.NewFilterStateError("date_range", fmt.Sprintf("start %s after end %s", s.DateRange.Start, s.DateRange.End))
	}
	for _, m := range s.Months {
		if len(m) != 7 || m[4] != '-' {
			return core.NewFilterStateError("months", fmt.Sprintf("%q is not a YYYY-MM key", m))
		}
	}
	return nil
}

// Hash produces a stable digest of the state for memoization keys.
func (s FilterState) Hash() core.FilterHash {
	components := map[string]interface{}{
		"range.start": s.DateRange.Start,
		"range.end":   s.DateRange.End,
	}

	months := append([]string(nil), s.Months...)
	sort.Strings(months)
	components["months"] = strings.Join(months, ",")

	for col, vals := range s.Values {
		sorted := append([]string(nil), vals...)
		sort.Strings(sorted)
		components["values."+col] = strings.Join(sorted, ",")
	}
	for col, val := range s.DrillDown {
		components["drill."+col] = val
	}

	return core.ComputeFilterHash(components)
}

// WithDrillDown returns a copy of the state with one extra drill-down
// constraint. The receiver is left untouched.
func (s FilterState) WithDrillDown(column, value string) FilterState {
	next := s.clone()
	if next.DrillDown == nil {
		next.DrillDown = make(map[string]string)
	}
	next.DrillDown[column] = value
	return next
}

// WithoutDrillDown returns a copy with all drill-down constraints cleared.
func (s FilterState) WithoutDrillDown() FilterState {
	next := s.clone()
	next.DrillDown = nil
	return next
}

func (s FilterState) clone() FilterState {
	next := FilterState{DateRange: s.DateRange}
	next.Months = append([]string(nil), s.Months...)
	if s.Values != nil {
		next.Values = make(map[string][]string, len(s.Values))
		for col, vals := range s.Values {
			next.Values[col] = append([]string(nil), vals...)
		}
	}
	if s.DrillDown != nil {
		next.DrillDown = make(map[string]string, len(s.DrillDown))
		for col, val := range s.DrillDown {
			next.DrillDown[col] = val
		}
	}
	return next
}
