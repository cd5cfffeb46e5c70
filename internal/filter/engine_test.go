package filter

import (
	"testing"

	"pulseboard/domain/core"
	"pulseboard/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterRows() []table.Row {
	return []table.Row{
		{"Date": "2024-03-01", "Buyer Type": "B2B", "Region": "North", "Price": "100"},
		{"Date": "15/03/2024", "Buyer Type": "B2C", "Region": "North", "Price": "200"},
		{"Date": "2024-04-10", "Buyer Type": "B2B", "Region": "South", "Price": "300"},
		{"Date": "junk", "Buyer Type": "B2B", "Region": "South", "Price": "400"},
	}
}

func TestApplyIdentityFilter(t *testing.T) {
	rows := filterRows()
	out, err := Apply(rows, "Date", table.EmptyFilterState())
	require.NoError(t, err)
	// Empty state returns the original set, unparseable dates included.
	assert.Equal(t, rows, out)
}

func TestApplyDateRange(t *testing.T) {
	state := table.FilterState{DateRange: table.DateRange{Start: "2024-03-01", End: "2024-03-31"}}
	out, err := Apply(filterRows(), "Date", state)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "B2B", out[0].CellString("Buyer Type"))
	assert.Equal(t, "B2C", out[1].CellString("Buyer Type"))
}

func TestApplyOpenEndedRange(t *testing.T) {
	state := table.FilterState{DateRange: table.DateRange{Start: "2024-04-01"}}
	out, err := Apply(filterRows(), "Date", state)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "South", out[0].CellString("Region"))
}

func TestApplyMonths(t *testing.T) {
	state := table.FilterState{Months: []string{"2024-04"}}
	out, err := Apply(filterRows(), "Date", state)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "300", out[0].CellString("Price"))
}

func TestApplyCategoricalValuesOrWithinAndAcross(t *testing.T) {
	state := table.FilterState{Values: map[string][]string{
		"Buyer Type": {"B2B", "B2C"}, // OR within the column
		"Region":     {"North"},      // AND across columns
	}}
	out, err := Apply(filterRows(), "Date", state)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestApplyDrillDown(t *testing.T) {
	state := table.FilterState{}.WithDrillDown("Region", "South")
	out, err := Apply(filterRows(), "Date", state)
	require.NoError(t, err)
	// No date predicate active, so the junk-dated row still qualifies.
	assert.Len(t, out, 2)

	cleared := state.WithoutDrillDown()
	out, err = Apply(filterRows(), "Date", cleared)
	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestApplyNarrowingProperty(t *testing.T) {
	base := table.FilterState{DateRange: table.DateRange{Start: "2024-03-01", End: "2024-04-30"}}
	broad, err := Apply(filterRows(), "Date", base)
	require.NoError(t, err)

	narrowed, err := Apply(filterRows(), "Date", base.WithDrillDown("Buyer Type", "B2B"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(narrowed), len(broad))

	withValues := base
	withValues.Values = map[string][]string{"Region": {"North"}}
	narrowed2, err := Apply(filterRows(), "Date", withValues)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(narrowed2), len(broad))
}

func TestApplyRejectsMalformedState(t *testing.T) {
	state := table.FilterState{DateRange: table.DateRange{Start: "2024-05-01", End: "2024-01-01"}}
	_, err := Apply(filterRows(), "Date", state)
	assert.ErrorIs(t, err, core.ErrInvalidFilterState)

	state = table.FilterState{Months: []string{"March"}}
	_, err = Apply(filterRows(), "Date", state)
	assert.ErrorIs(t, err, core.ErrInvalidFilterState)
}

func TestEngineReplaceAndSubscribe(t *testing.T) {
	e := NewEngine()
	assert.False(t, e.HasActiveFilters())

	var seen []table.FilterState
	e.Subscribe(func(s table.FilterState) { seen = append(seen, s) })

	next := table.FilterState{Months: []string{"2024-03"}}
	require.NoError(t, e.Replace(next))
	assert.True(t, e.HasActiveFilters())
	require.Len(t, seen, 1)
	assert.Equal(t, next.Months, seen[0].Months)

	e.Clear()
	assert.False(t, e.HasActiveFilters())
	assert.Len(t, seen, 2)
}

func TestEngineReplaceRejectsInvalid(t *testing.T) {
	e := NewEngine()
	err := e.Replace(table.FilterState{DateRange: table.DateRange{Start: "2024-12-31", End: "2024-01-01"}})
	assert.Error(t, err)
	// State must be unchanged after a rejected replace.
	assert.False(t, e.HasActiveFilters())
}

func TestFilterStateHashStable(t *testing.T) {
	a := table.FilterState{
		Months: []string{"2024-03", "2024-01"},
		Values: map[string][]string{"Region": {"North", "South"}},
	}
	b := table.FilterState{
		Months: []string{"2024-01", "2024-03"},
		Values: map[string][]string{"Region": {"South", "North"}},
	}
	// Hash is order-insensitive within components.
	assert.Equal(t, a.Hash(), b.Hash())

	c := b.WithDrillDown("Region", "North")
	assert.NotEqual(t, b.Hash(), c.Hash())
}
