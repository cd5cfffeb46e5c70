package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
	"pulseboard/ports"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// EnsureSchema creates the datasets table when missing. Rows are stored as a
// JSONB payload: the engine is schema-agnostic, so there is no column-per-field
// mapping to maintain.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		canonical_name TEXT NOT NULL,
		color TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		status TEXT NOT NULL,
		rows JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure datasets schema: %w", err)
	}
	return nil
}

// Create inserts a new dataset into the database
func (r *datasetRepository) Create(ctx context.Context, ds *table.Dataset) error {
	rowsJSON, err := json.Marshal(ds.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	query := `INSERT INTO datasets (
		id, display_name, canonical_name, color, row_count, status, rows, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		ds.ID, ds.DisplayName, ds.CanonicalName, ds.Color, ds.RowCount, ds.Status, rowsJSON, ds.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*table.Dataset, error) {
	query := `SELECT id, display_name, canonical_name, color, row_count, status, rows, created_at
	FROM datasets WHERE id = $1`

	ds, err := scanDataset(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return ds, nil
}

// List retrieves all datasets in upload order
func (r *datasetRepository) List(ctx context.Context) ([]*table.Dataset, error) {
	query := `SELECT id, display_name, canonical_name, color, row_count, status, rows, created_at
	FROM datasets ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*table.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, ds)
	}
	return datasets, rows.Err()
}

// Delete removes a dataset
func (r *datasetRepository) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return core.NewNotFoundError("dataset", id.String())
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDataset(scanner rowScanner) (*table.Dataset, error) {
	var ds table.Dataset
	var rowsJSON []byte
	var createdAt sql.NullTime

	err := scanner.Scan(
		&ds.ID, &ds.DisplayName, &ds.CanonicalName, &ds.Color, &ds.RowCount, &ds.Status, &rowsJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rowsJSON) > 0 {
		if err := json.Unmarshal(rowsJSON, &ds.Rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rows: %w", err)
		}
	}
	if createdAt.Valid {
		ds.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	return &ds, nil
}
