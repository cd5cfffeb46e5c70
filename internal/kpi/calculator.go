// Package kpi composes the classifier, filter, and aggregators into named
// summary metrics. KPIs degrade to "no data" when their columns cannot be
// resolved; a missing KPI never takes its siblings down.
package kpi

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"pulseboard/domain/table"
	"pulseboard/internal/classify"
	"pulseboard/internal/coerce"
)

// Reducer folds the resolved column values into one number.
type Reducer func(stats.Float64Data) (float64, error)

// Spec names a KPI and how to find and reduce its column.
type Spec struct {
	Name     string
	Keywords []string
	Reduce   Reducer
}

// RatioSpec is a KPI built from two independently-aggregated sums.
type RatioSpec struct {
	Name              string
	NumeratorKeywords []string
	DenominatorKeys   []string
}

// Value is the outcome of one KPI evaluation. OK=false with a Reason is the
// graceful "no data available" state, distinct from a real zero.
type Value struct {
	Name      string   `json:"name"`
	Value     float64  `json:"value"`
	OK        bool     `json:"ok"`
	Reason    string   `json:"reason,omitempty"`
	Column    string   `json:"column,omitempty"`
	Ambiguous []string `json:"ambiguous,omitempty"`
}

// Calculator evaluates KPI specs against a filtered row set.
type Calculator struct{}

// NewCalculator creates a calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute resolves the spec's column over the registry and reduces the
// lenient-parsed values. Missing columns report no-data instead of erroring.
func (c *Calculator) Compute(rows []table.Row, reg table.ColumnRegistry, spec Spec) Value {
	match, ok := classify.FindBestColumn(reg, table.RoleNumeric, spec.Keywords)
	if !ok || match.Fallback && requiresKeyword(spec) {
		return noData(spec.Name, fmt.Sprintf("no column matching %v", spec.Keywords))
	}

	values := columnValues(rows, match.Column)
	if len(values) == 0 {
		return noData(spec.Name, "no rows to aggregate")
	}

	result, err := spec.Reduce(values)
	if err != nil {
		return noData(spec.Name, err.Error())
	}

	return Value{
		Name:      spec.Name,
		Value:     result,
		OK:        true,
		Column:    match.Column,
		Ambiguous: match.Ambiguous,
	}
}

// ComputeRatio evaluates numerator/denominator sums as a percentage,
// reporting 0% on a zero denominator rather than NaN or infinity.
func (c *Calculator) ComputeRatio(rows []table.Row, reg table.ColumnRegistry, spec RatioSpec) Value {
	num, okNum := classify.FindBestColumn(reg, table.RoleNumeric, spec.NumeratorKeywords)
	den, okDen := classify.FindBestColumn(reg, table.RoleNumeric, spec.DenominatorKeys)
	if !okNum || num.Fallback {
		return noData(spec.Name, fmt.Sprintf("no column matching %v", spec.NumeratorKeywords))
	}
	if !okDen || den.Fallback {
		return noData(spec.Name, fmt.Sprintf("no column matching %v", spec.DenominatorKeys))
	}

	numTotal := sum(columnValues(rows, num.Column))
	denTotal := sum(columnValues(rows, den.Column))
	if denTotal == 0 {
		return Value{Name: spec.Name, Value: 0, OK: true, Column: num.Column}
	}

	return Value{
		Name:   spec.Name,
		Value:  numTotal / denTotal * 100,
		OK:     true,
		Column: num.Column,
	}
}

// RecordCount is the one KPI that needs no column resolution.
func (c *Calculator) RecordCount(rows []table.Row) Value {
	return Value{Name: "Records", Value: float64(len(rows)), OK: true}
}

// UniqueCount counts distinct non-empty values of the best categorical column.
func (c *Calculator) UniqueCount(rows []table.Row, reg table.ColumnRegistry, keywords []string) Value {
	match, ok := classify.FindBestColumn(reg, table.RoleCategorical, keywords)
	if !ok {
		return noData("Unique Categories", fmt.Sprintf("no column matching %v", keywords))
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		if v := row.CellString(match.Column); v != "" {
			seen[v] = true
		}
	}
	return Value{Name: "Unique Categories", Value: float64(len(seen)), OK: true, Column: match.Column}
}

// requiresKeyword distinguishes specs that must hit a real keyword from ones
// happy with the first numeric column. A "received"-keyword KPI on a dataset
// with no such column must say no-data, not grab an arbitrary number column.
func requiresKeyword(spec Spec) bool {
	return len(spec.Keywords) > 0
}

func columnValues(rows []table.Row, column string) stats.Float64Data {
	values := make(stats.Float64Data, 0, len(rows))
	for _, row := range rows {
		if row.IsEmptyCell(column) {
			continue
		}
		values = append(values, coerce.NumberOrZero(row.CellString(column)))
	}
	return values
}

func sum(values stats.Float64Data) float64 {
	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return total
}

func noData(name, reason string) Value {
	return Value{Name: name, OK: false, Reason: "no data available: " + reason}
}
