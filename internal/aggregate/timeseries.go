package aggregate

import (
	"sort"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
	"pulseboard/internal/coerce"
	"pulseboard/internal/dates"
)

// Bucketize groups rows into day/week/month buckets keyed by canonical date
// strings. Rows whose date cell fails normalization are silently excluded;
// that is the dirty-data contract, not an error. Output ascends by key, which
// is chronological because every key shares the canonical prefix form.
func Bucketize(rows []table.Row, dateColumn, valueColumn string, g table.Granularity) (table.TimeSeries, error) {
	if !g.Valid() {
		return nil, core.ErrInvalidGranularity
	}

	totals := make(map[string]*table.TimeSeriesPoint)
	for _, row := range rows {
		key, ok := bucketKey(row.Cell(dateColumn), g)
		if !ok {
			continue
		}

		p, exists := totals[key]
		if !exists {
			p = &table.TimeSeriesPoint{Key: key}
			totals[key] = p
		}
		p.Total += coerce.NumberOrZero(row.CellString(valueColumn))
		p.Count++
	}

	series := make(table.TimeSeries, 0, len(totals))
	for _, p := range totals {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Key < series[j].Key })
	return series, nil
}

// BucketizeAll aligns one series per dataset to the union of bucket keys
// across all participating datasets, so a dataset with a gap in one month
// still carries a zero-valued point there. All datasets are bucketed at the
// same granularity; mixed calendars are not supported.
func BucketizeAll(datasets map[core.DatasetID][]table.Row, dateColumns map[core.DatasetID]string, valueColumns map[core.DatasetID]string, g table.Granularity) (map[core.DatasetID]table.TimeSeries, error) {
	if !g.Valid() {
		return nil, core.ErrInvalidGranularity
	}

	perDataset := make(map[core.DatasetID]table.TimeSeries, len(datasets))
	keySet := make(map[string]bool)

	for id, rows := range datasets {
		series, err := Bucketize(rows, dateColumns[id], valueColumns[id], g)
		if err != nil {
			return nil, err
		}
		perDataset[id] = series
		for _, p := range series {
			keySet[p.Key] = true
		}
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	aligned := make(map[core.DatasetID]table.TimeSeries, len(perDataset))
	for id, series := range perDataset {
		byKey := make(map[string]table.TimeSeriesPoint, len(series))
		for _, p := range series {
			byKey[p.Key] = p
		}

		out := make(table.TimeSeries, 0, len(keys))
		for _, k := range keys {
			if p, ok := byKey[k]; ok {
				out = append(out, p)
			} else {
				out = append(out, table.TimeSeriesPoint{Key: k})
			}
		}
		aligned[id] = out
	}

	return aligned, nil
}

func bucketKey(value interface{}, g table.Granularity) (string, bool) {
	canonical, ok := dates.Normalize(value)
	if !ok {
		return "", false
	}

	switch g {
	case table.GranularityDay:
		return canonical, true
	case table.GranularityWeek:
		return dates.WeekStart(canonical)
	case table.GranularityMonth:
		return dates.MonthKey(canonical), true
	}
	return "", false
}
