// Package classify labels columns of a schema-less dataset as numeric, date,
// or categorical, and resolves semantic roles ("the quantity column") through
// keyword scoring. The produced ColumnRegistry is the engine's inspectable
// guessed schema.
package classify

import (
	"pulseboard/domain/table"
	"pulseboard/internal/coerce"
	"pulseboard/internal/dates"
)

// DefaultSampleSize bounds how many non-empty values are inspected per
// column. Sampling is a cost trade-off, not a correctness guarantee.
const DefaultSampleSize = 10

// Classify assigns a role to every column seen in the rows. A column is
// numeric when more than half of its sampled non-empty values parse leniently
// as finite numbers; date when its name carries a date keyword or a majority
// of samples normalize; categorical otherwise.
func Classify(rows []table.Row, sampleSize int) table.ColumnRegistry {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	reg := table.NewColumnRegistry()
	for _, column := range columnSet(rows) {
		samples := sampleValues(rows, column, sampleSize)
		reg.Roles[column] = classifyColumn(column, samples)
		if nameMatchesAny(column, chartExcludedKeywords) {
			reg.ChartExcluded[column] = true
		}
	}
	return reg
}

func classifyColumn(column string, samples []string) table.ColumnRole {
	// Name wins for dates: a "Date" column full of serial numbers would
	// otherwise pass the numeric test.
	if nameMatchesAny(column, dateNameKeywords) {
		return table.RoleDate
	}

	if len(samples) == 0 {
		return table.RoleCategorical
	}

	numeric := 0
	parseable := 0
	for _, s := range samples {
		if _, ok := coerce.ParseNumber(s); ok {
			numeric++
		}
		if _, ok := dates.Normalize(s); ok {
			parseable++
		}
	}

	if numeric*2 > len(samples) {
		return table.RoleNumeric
	}
	if parseable*2 > len(samples) {
		return table.RoleDate
	}
	return table.RoleCategorical
}

// columnSet collects every column name appearing in the rows, in sorted
// order via the registry accessors later; order here is irrelevant.
func columnSet(rows []table.Row) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	return cols
}

// sampleValues draws up to limit non-empty values for a column.
func sampleValues(rows []table.Row, column string, limit int) []string {
	var samples []string
	for _, row := range rows {
		if s := row.CellString(column); s != "" {
			samples = append(samples, s)
			if len(samples) >= limit {
				break
			}
		}
	}
	return samples
}
