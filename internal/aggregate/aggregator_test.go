package aggregate

import (
	"testing"

	"pulseboard/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCategorySpecExample(t *testing.T) {
	rows := []table.Row{
		{"Date": "01/03/2024", "Buyer Type": "B2B", "Price": "1,200"},
		{"Date": "2024-03-15", "Buyer Type": "B2C", "Price": "800"},
	}

	result := ByCategory(rows, "Buyer Type", "Price")
	require.Len(t, result, 2)
	assert.Equal(t, table.CategoryBucket{Key: "B2B", Total: 1200, Count: 1, Average: 1200}, result[0])
	assert.Equal(t, table.CategoryBucket{Key: "B2C", Total: 800, Count: 1, Average: 800}, result[1])
}

func TestByCategoryGrandTotalMatchesDirectSum(t *testing.T) {
	rows := []table.Row{
		{"Region": "North", "Sales": "100"},
		{"Region": "South", "Sales": "250.5"},
		{"Region": "North", "Sales": "$1,000"},
		{"Region": "", "Sales": "50"},
		{"Region": "East", "Sales": "junk"}, // counts as 0, not an error
	}

	result := ByCategory(rows, "Region", "Sales")
	assert.InDelta(t, 1400.5, result.GrandTotal(), 1e-9)

	// Grouping by a different column must preserve the grand total.
	bySales := ByCategory(rows, "Sales", "Sales")
	assert.InDelta(t, 1400.5, bySales.GrandTotal(), 1e-9)
}

func TestByCategoryUnknownGroup(t *testing.T) {
	rows := []table.Row{
		{"Sales": "10"},
		{"Region": "", "Sales": "20"},
		{"Region": "West", "Sales": "5"},
	}

	result := ByCategory(rows, "Region", "Sales")
	require.Len(t, result, 2)
	assert.Equal(t, UnknownGroup, result[0].Key)
	assert.Equal(t, 30.0, result[0].Total)
	assert.Equal(t, 2, result[0].Count)
	assert.Equal(t, 15.0, result[0].Average)
}

func TestByCategoryStableTieBreak(t *testing.T) {
	rows := []table.Row{
		{"C": "beta", "V": "10"},
		{"C": "alpha", "V": "10"},
		{"C": "gamma", "V": "10"},
	}

	result := ByCategory(rows, "C", "V")
	require.Len(t, result, 3)
	// Equal totals keep first-seen order.
	assert.Equal(t, "beta", result[0].Key)
	assert.Equal(t, "alpha", result[1].Key)
	assert.Equal(t, "gamma", result[2].Key)
}

func TestByCategoryEmptyRows(t *testing.T) {
	result := ByCategory(nil, "Region", "Sales")
	assert.Empty(t, result)
}

func TestCountByColumn(t *testing.T) {
	rows := []table.Row{
		{"Status": "paid"},
		{"Status": "paid"},
		{"Status": "overdue"},
		{"Status": ""},
	}

	result := CountByColumn(rows, "Status")
	require.Len(t, result, 3)
	assert.Equal(t, "paid", result[0].Key)
	assert.Equal(t, 2.0, result[0].Total)
	assert.Equal(t, 2, result[0].Count)
	assert.InDelta(t, 4.0, result.GrandTotal(), 1e-9)
}
