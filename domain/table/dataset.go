package table

import (
	"pulseboard/domain/core"
)

// DatasetStatus represents the health of an uploaded dataset
type DatasetStatus string

const (
	StatusValid   DatasetStatus = "valid"
	StatusWarning DatasetStatus = "warning"
	StatusError   DatasetStatus = "error"
)

// Dataset represents one uploaded file after decoding. Rows are immutable after
// creation; CanonicalName and Color are pure functions of DisplayName and the
// registry position, re-derivable at any time.
type Dataset struct {
	ID            core.DatasetID `json:"id"`
	DisplayName   string         `json:"display_name"`
	CanonicalName string         `json:"canonical_name"`
	Rows          []Row          `json:"rows"`
	Color         string         `json:"color"`
	RowCount      int            `json:"row_count"`
	Status        DatasetStatus  `json:"status"`
	CreatedAt     core.Timestamp `json:"created_at"`
}

// NewDataset creates a dataset with a fresh ID and derived row count
func NewDataset(displayName string, rows []Row) *Dataset {
	status := StatusValid
	if len(rows) == 0 {
		status = StatusWarning
	}
	return &Dataset{
		ID:          core.NewDatasetID(),
		DisplayName: displayName,
		Rows:        rows,
		RowCount:    len(rows),
		Status:      status,
		CreatedAt:   core.Now(),
	}
}

// IsEmpty reports whether the dataset holds no rows. An empty dataset is a
// valid terminal state, distinct from an error.
func (d *Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}
