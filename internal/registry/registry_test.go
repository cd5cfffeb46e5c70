package registry

import (
	"fmt"
	"testing"

	"pulseboard/domain/core"
	"pulseboard/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalNameMostSpecificFirst(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"POS LFOM Sales 2024", "POS LFOM"},
		{"LFOM Direct", "LFOM"}, // must not fall through to FOM
		{"pos fom west region", "POS FOM"},
		{"FOM 2023", "FOM"},
		{"fom", "FOM"},
		{"Claims Q3", "Claims Q3"}, // unmatched names pass through
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, CanonicalName(test.raw), "raw %q", test.raw)
	}
}

func TestAssignColorCanonicalFixed(t *testing.T) {
	// Canonical categories keep their color regardless of position.
	assert.Equal(t, AssignColor("LFOM Direct", 0), AssignColor("lfom upload", 5))
	assert.NotEqual(t, AssignColor("FOM 2023", 0), AssignColor("LFOM Direct", 0))
}

func TestAssignColorPalettePosition(t *testing.T) {
	a := AssignColor("Production Data", 0)
	b := AssignColor("Production Data", 1)
	assert.NotEqual(t, a, b)
	// Palette wraps.
	assert.Equal(t, a, AssignColor("Production Data", len(palette)))
}

func TestStableColorSurvivesReordering(t *testing.T) {
	c := StableColor("Production Data")
	assert.Equal(t, c, StableColor("Production Data"))
	assert.NotEmpty(t, c)
}

func TestRegistryAddRemove(t *testing.T) {
	r := New()

	notified := 0
	r.Subscribe(func() { notified++ })

	ds, err := r.Add("POS LFOM Sales 2024", []table.Row{{"A": "1"}})
	require.NoError(t, err)
	assert.Equal(t, "POS LFOM", ds.CanonicalName)
	assert.Equal(t, 1, ds.RowCount)
	assert.Equal(t, table.StatusValid, ds.Status)
	assert.Equal(t, 1, notified)

	got, err := r.Get(ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	require.NoError(t, r.Remove(ds.ID))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 2, notified)

	err = r.Remove(ds.ID)
	assert.Error(t, err)
}

func TestRegistryEmptyNameRejected(t *testing.T) {
	r := New()
	_, err := r.Add("", nil)
	assert.Error(t, err)
}

func TestRegistryEmptyRowsWarningStatus(t *testing.T) {
	r := New()
	ds, err := r.Add("Empty Upload", nil)
	require.NoError(t, err)
	assert.Equal(t, table.StatusWarning, ds.Status)
	assert.True(t, ds.IsEmpty())
}

func TestRemoveLeavesHandedOutDatasetsUntouched(t *testing.T) {
	r := New()
	first, err := r.Add("First Upload", []table.Row{{"A": "1"}})
	require.NoError(t, err)
	second, err := r.Add("Second Upload", []table.Row{{"A": "1"}})
	require.NoError(t, err)

	held := r.List()
	require.Len(t, held, 2)

	require.NoError(t, r.Remove(first.ID))

	// Datasets handed out before the remove keep the colors they were read
	// with; only a fresh read sees the recomputed position.
	assert.Equal(t, AssignColor("Second Upload", 1), held[1].Color)
	assert.Equal(t, AssignColor("Second Upload", 1), second.Color)

	got, err := r.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, AssignColor("Second Upload", 0), got.Color)
}

func TestConcurrentReadsDuringRemove(t *testing.T) {
	r := New()
	var ids []core.DatasetID
	for i := 0; i < 8; i++ {
		ds, err := r.Add(fmt.Sprintf("Upload %d", i), []table.Row{{"A": "1"}})
		require.NoError(t, err)
		ids = append(ids, ds.ID)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, id := range ids[:4] {
			_ = r.Remove(id)
		}
	}()
	for i := 0; i < 100; i++ {
		for _, ds := range r.List() {
			_ = ds.Color
		}
	}
	<-done
}

func TestRegistryRecolorsAfterRemove(t *testing.T) {
	r := New()
	first, _ := r.Add("First Upload", []table.Row{{"A": "1"}})
	second, _ := r.Add("Second Upload", []table.Row{{"A": "1"}})

	require.NoError(t, r.Remove(first.ID))

	got, err := r.Get(second.ID)
	require.NoError(t, err)
	// Second dataset moved to position 0 and takes that slot's color.
	assert.Equal(t, AssignColor("Second Upload", 0), got.Color)
}
