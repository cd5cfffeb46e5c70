package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	src := strings.NewReader("Date,Buyer Type,Price\n2024-03-01,B2B,\"1,200\"\n15/03/2024,B2C,800\n")

	decoded, err := DecodeCSV(src, "FOM Sales")
	require.NoError(t, err)
	assert.Equal(t, "FOM Sales", decoded.DisplayName)
	assert.Equal(t, []string{"Date", "Buyer Type", "Price"}, decoded.Headers)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "1,200", decoded.Rows[0].CellString("Price"))
	assert.Equal(t, "B2C", decoded.Rows[1].CellString("Buyer Type"))
}

func TestDecodeCSVBlankCellsBecomeNil(t *testing.T) {
	src := strings.NewReader("A,B\n1,\n,2\n")
	decoded, err := DecodeCSV(src, "gaps")
	require.NoError(t, err)
	require.Len(t, decoded.Rows, 2)
	assert.True(t, decoded.Rows[0].IsEmptyCell("B"))
	assert.True(t, decoded.Rows[1].IsEmptyCell("A"))
	assert.Equal(t, "2", decoded.Rows[1].CellString("B"))
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	src := strings.NewReader("A,B,C\n1,2\nx,y,z,extra\n")
	decoded, err := DecodeCSV(src, "ragged")
	require.NoError(t, err)
	require.Len(t, decoded.Rows, 2)
	assert.True(t, decoded.Rows[0].IsEmptyCell("C"))
	assert.Equal(t, "z", decoded.Rows[1].CellString("C"))
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("A,B\n"), "empty")
	assert.Error(t, err)
}

func TestReaderReadsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fom_sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Amount\n2024-03-01,100\n"), 0o644))

	decoded, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "fom_sales", decoded.DisplayName)
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "100", decoded.Rows[0].CellString("Amount"))
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader("/nonexistent/file.csv").Read()
	assert.Error(t, err)
}
