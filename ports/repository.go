// Package ports defines the interfaces between the engine and its external
// collaborators.
package ports

import (
	"context"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
)

// DatasetRepository persists raw uploaded datasets so a restart can rebuild
// the in-memory registry. Derived aggregates are never persisted; every view
// is recomputed from rows and filter state.
type DatasetRepository interface {
	Create(ctx context.Context, ds *table.Dataset) error
	GetByID(ctx context.Context, id core.DatasetID) (*table.Dataset, error)
	List(ctx context.Context) ([]*table.Dataset, error)
	Delete(ctx context.Context, id core.DatasetID) error
}
