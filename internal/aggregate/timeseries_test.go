package aggregate

import (
	"testing"

	"pulseboard/domain/core"
	"pulseboard/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesRows() []table.Row {
	return []table.Row{
		{"Date": "2024-03-01", "Amount": "100"},
		{"Date": "01/03/2024", "Amount": "50"}, // same day, different format
		{"Date": "2024-03-15", "Amount": "200"},
		{"Date": "2024-04-02", "Amount": "25"},
		{"Date": "garbage", "Amount": "999"}, // silently excluded
	}
}

func TestBucketizeByDay(t *testing.T) {
	series, err := Bucketize(seriesRows(), "Date", "Amount", table.GranularityDay)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, table.TimeSeriesPoint{Key: "2024-03-01", Total: 150, Count: 2}, series[0])
	assert.Equal(t, table.TimeSeriesPoint{Key: "2024-03-15", Total: 200, Count: 1}, series[1])
	assert.Equal(t, table.TimeSeriesPoint{Key: "2024-04-02", Total: 25, Count: 1}, series[2])
}

func TestBucketizeByMonth(t *testing.T) {
	series, err := Bucketize(seriesRows(), "Date", "Amount", table.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-03", series[0].Key)
	assert.Equal(t, 350.0, series[0].Total)
	assert.Equal(t, "2024-04", series[1].Key)
}

func TestBucketizeByWeekSundayAligned(t *testing.T) {
	rows := []table.Row{
		{"Date": "2024-03-15", "Amount": "10"}, // Friday
		{"Date": "2024-03-10", "Amount": "5"},  // the Sunday starting that week
		{"Date": "2024-03-17", "Amount": "7"},  // next Sunday
	}
	series, err := Bucketize(rows, "Date", "Amount", table.GranularityWeek)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, table.TimeSeriesPoint{Key: "2024-03-10", Total: 15, Count: 2}, series[0])
	assert.Equal(t, table.TimeSeriesPoint{Key: "2024-03-17", Total: 7, Count: 1}, series[1])
}

func TestBucketizeTotalsConserved(t *testing.T) {
	// Bucket totals must equal the direct sum over rows that normalize.
	series, err := Bucketize(seriesRows(), "Date", "Amount", table.GranularityMonth)
	require.NoError(t, err)
	assert.InDelta(t, 375.0, series.Total(), 1e-9)
}

func TestBucketizeInvalidGranularity(t *testing.T) {
	_, err := Bucketize(seriesRows(), "Date", "Amount", table.Granularity("decade"))
	assert.ErrorIs(t, err, core.ErrInvalidGranularity)
}

func TestBucketizeAllUnionOfKeys(t *testing.T) {
	idA := core.DatasetID("a")
	idB := core.DatasetID("b")

	datasets := map[core.DatasetID][]table.Row{
		idA: {
			{"Date": "2024-01-10", "Amount": "100"},
			{"Date": "2024-03-10", "Amount": "300"},
		},
		idB: {
			{"Date": "2024-02-05", "Amount": "50"},
		},
	}
	dateCols := map[core.DatasetID]string{idA: "Date", idB: "Date"}
	valueCols := map[core.DatasetID]string{idA: "Amount", idB: "Amount"}

	aligned, err := BucketizeAll(datasets, dateCols, valueCols, table.GranularityMonth)
	require.NoError(t, err)

	// Both series share the union key set, zero-filled where a dataset has a gap.
	wantKeys := []string{"2024-01", "2024-02", "2024-03"}
	for id, series := range aligned {
		require.Len(t, series, 3, "dataset %s", id)
		for i, p := range series {
			assert.Equal(t, wantKeys[i], p.Key)
		}
	}

	assert.Equal(t, 100.0, aligned[idA][0].Total)
	assert.Equal(t, 0.0, aligned[idA][1].Total)
	assert.Equal(t, 300.0, aligned[idA][2].Total)
	assert.Equal(t, 0.0, aligned[idB][0].Total)
	assert.Equal(t, 50.0, aligned[idB][1].Total)
}
