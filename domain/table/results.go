package table

// CategoryBucket is one group of an aggregation result.
type CategoryBucket struct {
	Key     string  `json:"key"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// AggregationResult is ordered descending by Total unless the producer was
// asked otherwise; ties keep first-seen order.
type AggregationResult []CategoryBucket

// GrandTotal sums the bucket totals.
func (r AggregationResult) GrandTotal() float64 {
	var sum float64
	for _, b := range r {
		sum += b.Total
	}
	return sum
}

// TimeSeriesPoint is one bucket of a time series. Key is a canonical
// YYYY-MM-DD (day/week start) or YYYY-MM (month) string, so lexicographic
// ordering matches chronological ordering.
type TimeSeriesPoint struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// TimeSeries is ordered ascending by Key.
type TimeSeries []TimeSeriesPoint

// Total sums the point totals.
func (s TimeSeries) Total() float64 {
	var sum float64
	for _, p := range s {
		sum += p.Total
	}
	return sum
}

// Granularity selects the time bucket width.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether the granularity is one of day/week/month.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}
