// Package ingest decodes uploaded CSV and XLSX files into the engine's row
// form. The engine itself makes no assumption about column names or
// completeness; this adapter only maps headers to trimmed cell values.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pulseboard/domain/table"
	"pulseboard/internal/errors"
)

// Decoded is the output handed to the dataset registry.
type Decoded struct {
	DisplayName string
	Headers     []string
	Rows        []table.Row
}

// Reader handles reading CSV and Excel files into rows
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given path, sniffing type by extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read decodes the file into header-keyed rows, delegating to the stream
// decoders so file and upload ingestion share one decode path.
func (r *Reader) Read() (*Decoded, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(r.filePath)
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DecodeError(fmt.Sprintf("failed to open %s", r.filePath), err)
	}
	defer file.Close()

	switch r.fileType {
	case "csv":
		return DecodeCSV(file, displayName(r.filePath))
	case "xlsx":
		return DecodeXLSX(file, displayName(r.filePath))
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

// DecodeCSV decodes CSV content from a stream, for upload handlers that never
// touch the filesystem.
func DecodeCSV(src io.Reader, displayName string) (*Decoded, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // ragged rows are the engine's problem, not ours

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DecodeError("failed to read CSV data", err)
	}

	decoded, err := fromRecords(records)
	if err != nil {
		return nil, err
	}
	decoded.DisplayName = displayName
	return decoded, nil
}

// DecodeXLSX decodes workbook content from a stream, first sheet only.
func DecodeXLSX(src io.Reader, displayName string) (*Decoded, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.DecodeError("failed to read workbook data", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.DecodeError("workbook has no sheets", nil)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.DecodeError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}

	decoded, err := fromRecords(records)
	if err != nil {
		return nil, err
	}
	decoded.DisplayName = displayName
	return decoded, nil
}

// fromRecords maps the header row onto each data row. Blank cells become nil
// so the engine's empty-cell handling applies uniformly.
func fromRecords(records [][]string) (*Decoded, error) {
	if len(records) < 2 {
		return nil, errors.DecodeError("file must have a header row and at least one data row", nil)
	}

	headerRow := records[0]
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(table.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				if clean := strings.TrimSpace(record[i]); clean != "" {
					row[header] = clean
					continue
				}
			}
			row[header] = nil
		}
		rows = append(rows, row)
	}

	return &Decoded{Headers: headers, Rows: rows}, nil
}

func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
