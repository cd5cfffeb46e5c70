package kpi

import (
	"github.com/montanaflynn/stats"

	"pulseboard/domain/table"
)

// NumericSummary holds descriptive statistics for one numeric column.
type NumericSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Summarize computes descriptive statistics over the lenient-parsed values of
// a column. The boolean is false when the column has no usable values.
func Summarize(rows []table.Row, column string) (NumericSummary, bool) {
	data := columnValues(rows, column)
	if len(data) == 0 {
		return NumericSummary{}, false
	}

	s := NumericSummary{Column: column, Count: len(data)}

	var err error
	if s.Min, err = stats.Min(data); err != nil {
		return NumericSummary{}, false
	}
	if s.Max, err = stats.Max(data); err != nil {
		return NumericSummary{}, false
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return NumericSummary{}, false
	}
	if s.Median, err = stats.Median(data); err != nil {
		return NumericSummary{}, false
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return NumericSummary{}, false
	}

	// Quartiles fail on single-element data; degrade to the value itself.
	if q25, err := stats.Percentile(data, 25); err == nil {
		s.Q25 = q25
	} else {
		s.Q25 = s.Median
	}
	if q75, err := stats.Percentile(data, 75); err == nil {
		s.Q75 = q75
	} else {
		s.Q75 = s.Median
	}

	return s, true
}
