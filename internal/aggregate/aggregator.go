// Package aggregate reduces filtered row sets into the grouped structures the
// charts and KPIs consume: category buckets and time-series points. All
// functions are pure over their inputs.
package aggregate

import (
	"sort"

	"pulseboard/domain/table"
	"pulseboard/internal/coerce"
)

// UnknownGroup collects rows whose category cell is empty or missing.
const UnknownGroup = "Unknown"

// ByCategory groups rows by the string value of categoryColumn and sums a
// lenient parse of valueColumn. Unparseable values count as 0, never error.
// Result is descending by total; ties keep first-seen order (stable sort, so
// repeated runs over the same rows reproduce the same ordering).
func ByCategory(rows []table.Row, categoryColumn, valueColumn string) table.AggregationResult {
	order := make([]string, 0)
	buckets := make(map[string]*table.CategoryBucket)

	for _, row := range rows {
		key := row.CellString(categoryColumn)
		if key == "" {
			key = UnknownGroup
		}

		b, ok := buckets[key]
		if !ok {
			b = &table.CategoryBucket{Key: key}
			buckets[key] = b
			order = append(order, key)
		}

		b.Total += coerce.NumberOrZero(row.CellString(valueColumn))
		b.Count++
	}

	result := make(table.AggregationResult, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if b.Count > 0 {
			b.Average = b.Total / float64(b.Count)
		}
		result = append(result, *b)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}

// CountByColumn is the degenerate aggregation used when no numeric column
// exists: every row contributes 1 to its group's total.
func CountByColumn(rows []table.Row, categoryColumn string) table.AggregationResult {
	order := make([]string, 0)
	buckets := make(map[string]*table.CategoryBucket)

	for _, row := range rows {
		key := row.CellString(categoryColumn)
		if key == "" {
			key = UnknownGroup
		}

		b, ok := buckets[key]
		if !ok {
			b = &table.CategoryBucket{Key: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.Total++
		b.Count++
	}

	result := make(table.AggregationResult, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.Average = 1
		result = append(result, *b)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}
