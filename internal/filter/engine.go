// Package filter derives the "current view" row set. The engine owns exactly
// one FilterState; transitions are whole-state replacements, which is what
// keeps every derived aggregate a pure function of (rows, state).
package filter

import (
	"sync"

	"pulseboard/domain/table"
	"pulseboard/internal/dates"
)

// Subscriber is invoked after every state replacement.
type Subscriber func(table.FilterState)

// Engine holds the composable filter state shared by every chart and KPI.
type Engine struct {
	mu          sync.RWMutex
	state       table.FilterState
	subscribers []Subscriber
}

// NewEngine starts with the identity filter.
func NewEngine() *Engine {
	return &Engine{state: table.EmptyFilterState()}
}

// Current returns the active state.
func (e *Engine) Current() table.FilterState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Replace swaps in a new state wholesale. Partial in-place mutation is not
// offered; build the next state and replace. Invalid states are rejected as
// caller contract violations.
func (e *Engine) Replace(next table.FilterState) error {
	if err := next.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.state = next
	subs := append([]Subscriber(nil), e.subscribers...)
	e.mu.Unlock()

	for _, s := range subs {
		s(next)
	}
	return nil
}

// Clear replaces the state with the identity filter.
func (e *Engine) Clear() {
	_ = e.Replace(table.EmptyFilterState())
}

// Subscribe registers a listener for state replacements.
func (e *Engine) Subscribe(s Subscriber) {
	e.mu.Lock()
	e.subscribers = append(e.subscribers, s)
	e.mu.Unlock()
}

// HasActiveFilters reports whether any predicate group constrains the view.
func (e *Engine) HasActiveFilters() bool {
	return e.Current().Active()
}

// Apply derives the filtered row set for one dataset. Predicate groups run in
// a fixed narrowing order: date range, month membership, categorical values
// (OR within a column, AND across columns), then drill-down exact matches.
// Later groups never widen the set. An empty state is the identity filter.
func Apply(rows []table.Row, dateColumn string, state table.FilterState) ([]table.Row, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if !state.Active() {
		return rows, nil
	}

	months := make(map[string]bool, len(state.Months))
	for _, m := range state.Months {
		months[m] = true
	}

	out := make([]table.Row, 0, len(rows))
rowLoop:
	for _, row := range rows {
		if !state.DateRange.IsEmpty() || len(months) > 0 {
			canonical, ok := dates.Normalize(row.Cell(dateColumn))
			if !ok {
				// Date-dependent predicates exclude unparseable rows.
				continue
			}
			if !inRange(canonical, state.DateRange) {
				continue
			}
			if len(months) > 0 && !months[dates.MonthKey(canonical)] {
				continue
			}
		}

		for column, selected := range state.Values {
			if len(selected) == 0 {
				continue
			}
			if !contains(selected, row.CellString(column)) {
				continue rowLoop
			}
		}

		for column, value := range state.DrillDown {
			if row.CellString(column) != value {
				continue rowLoop
			}
		}

		out = append(out, row)
	}
	return out, nil
}

// inRange compares canonical dates lexicographically, inclusive both ends.
func inRange(canonical string, r table.DateRange) bool {
	if r.Start != "" && canonical < r.Start {
		return false
	}
	if r.End != "" && canonical > r.End {
		return false
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
