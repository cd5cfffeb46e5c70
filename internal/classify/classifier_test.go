package classify

import (
	"testing"

	"pulseboard/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []table.Row {
	return []table.Row{
		{"Date": "01/03/2024", "Buyer Type": "B2B", "Price": "1,200", "Address": "12 MG Road"},
		{"Date": "2024-03-15", "Buyer Type": "B2C", "Price": "800", "Address": "4 Park St"},
		{"Date": "15/03/2024", "Buyer Type": "B2B", "Price": "$450", "Address": "9 Hill Ave"},
	}
}

func TestClassifyRoles(t *testing.T) {
	reg := Classify(sampleRows(), DefaultSampleSize)

	role, ok := reg.Role("Price")
	require.True(t, ok)
	assert.Equal(t, table.RoleNumeric, role)

	role, _ = reg.Role("Date")
	assert.Equal(t, table.RoleDate, role)

	role, _ = reg.Role("Buyer Type")
	assert.Equal(t, table.RoleCategorical, role)

	role, _ = reg.Role("Address")
	assert.Equal(t, table.RoleCategorical, role)
	assert.True(t, reg.IsChartExcluded("Address"))
}

func TestClassifyDateByValueMajority(t *testing.T) {
	rows := []table.Row{
		{"Delivered On": "01/03/2024"},
		{"Delivered On": "02/03/2024"},
		{"Delivered On": "garbage"},
	}
	reg := Classify(rows, DefaultSampleSize)
	role, _ := reg.Role("Delivered On")
	assert.Equal(t, table.RoleDate, role)
}

func TestClassifyDateNameBeatsSerialNumbers(t *testing.T) {
	rows := []table.Row{
		{"Invoice Date": "45366"},
		{"Invoice Date": "45367"},
	}
	reg := Classify(rows, DefaultSampleSize)
	role, _ := reg.Role("Invoice Date")
	assert.Equal(t, table.RoleDate, role)
}

func TestClassifyRaggedRows(t *testing.T) {
	rows := []table.Row{
		{"A": "1"},
		{"B": "x"},
	}
	reg := Classify(rows, DefaultSampleSize)
	_, okA := reg.Role("A")
	_, okB := reg.Role("B")
	assert.True(t, okA)
	assert.True(t, okB)
}

func TestFindBestColumnKeywordPriority(t *testing.T) {
	reg := table.NewColumnRegistry()
	reg.Roles["Total Amount"] = table.RoleNumeric
	reg.Roles["Quantity"] = table.RoleNumeric
	reg.Roles["Price"] = table.RoleNumeric

	// "quantity" is first in priority, so the literal match wins over the
	// amount column even though both keywords would hit something.
	m, ok := FindBestColumn(reg, table.RoleNumeric, []string{"quantity", "amount"})
	require.True(t, ok)
	assert.Equal(t, "Quantity", m.Column)
	assert.Equal(t, "quantity", m.Keyword)
	assert.Empty(t, m.Ambiguous)
}

func TestFindBestColumnReportsAmbiguity(t *testing.T) {
	reg := table.NewColumnRegistry()
	reg.Roles["Amount Paid"] = table.RoleNumeric
	reg.Roles["Amount Due"] = table.RoleNumeric

	m, ok := FindBestColumn(reg, table.RoleNumeric, []string{"amount"})
	require.True(t, ok)
	assert.Equal(t, "Amount Due", m.Column) // sorted order, deterministic
	assert.Equal(t, []string{"Amount Paid"}, m.Ambiguous)
}

func TestFindBestColumnFallback(t *testing.T) {
	reg := table.NewColumnRegistry()
	reg.Roles["Weight"] = table.RoleNumeric

	m, ok := FindBestColumn(reg, table.RoleNumeric, []string{"quantity"})
	require.True(t, ok)
	assert.Equal(t, "Weight", m.Column)
	assert.True(t, m.Fallback)
}

func TestFindBestColumnSkipsChartExcluded(t *testing.T) {
	reg := table.NewColumnRegistry()
	reg.Roles["Address"] = table.RoleCategorical
	reg.Roles["Region"] = table.RoleCategorical
	reg.ChartExcluded["Address"] = true

	m, ok := FindBestColumn(reg, table.RoleCategorical, []string{"address"})
	require.True(t, ok)
	assert.Equal(t, "Region", m.Column)
	assert.True(t, m.Fallback)
}

func TestFindBestColumnNoCandidates(t *testing.T) {
	reg := table.NewColumnRegistry()
	_, ok := FindBestColumn(reg, table.RoleNumeric, []string{"amount"})
	assert.False(t, ok)
}
