// Package registry holds the set of uploaded datasets and gives each a
// stable identity: an ID, a canonical short name, and a display color.
package registry

import (
	"sync"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
)

// Subscriber is invoked after every dataset-set change. Notifications carry
// no payload; subscribers re-derive from the registry, keeping derivation a
// pure function of current state.
type Subscriber func()

// Registry is safe for concurrent use. Accessors return copies of the
// dataset header (sharing the immutable row slice), so Remove recoloring the
// stored datasets never changes a dataset a caller already holds.
type Registry struct {
	mu          sync.RWMutex
	order       []core.DatasetID
	datasets    map[core.DatasetID]*table.Dataset
	subscribers []Subscriber
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		datasets: make(map[core.DatasetID]*table.Dataset),
	}
}

// Add registers a decoded upload, deriving canonical name and positional
// color. An empty display name is a caller contract violation.
func (r *Registry) Add(displayName string, rows []table.Row) (*table.Dataset, error) {
	if displayName == "" {
		return nil, core.ErrEmptyDatasetName
	}

	ds := table.NewDataset(displayName, rows)
	ds.CanonicalName = CanonicalName(displayName)

	r.mu.Lock()
	ds.Color = AssignColor(displayName, len(r.order))
	r.order = append(r.order, ds.ID)
	r.datasets[ds.ID] = ds
	out := snapshot(ds)
	r.mu.Unlock()

	r.notify()
	return out, nil
}

// Remove drops a dataset and re-derives positional colors for the remainder.
func (r *Registry) Remove(id core.DatasetID) error {
	r.mu.Lock()
	if _, ok := r.datasets[id]; !ok {
		r.mu.Unlock()
		return core.NewNotFoundError("dataset", id.String())
	}
	delete(r.datasets, id)

	kept := r.order[:0]
	for _, existing := range r.order {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	r.order = kept

	// Positional colors are a pure function of (name, index); recompute
	// so remaining datasets stay consistent with their new positions.
	for i, existing := range r.order {
		r.datasets[existing].Color = AssignColor(r.datasets[existing].DisplayName, i)
	}
	r.mu.Unlock()

	r.notify()
	return nil
}

// Get returns a dataset by ID.
func (r *Registry) Get(id core.DatasetID) (*table.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[id]
	if !ok {
		return nil, core.NewNotFoundError("dataset", id.String())
	}
	return snapshot(ds), nil
}

// List returns datasets in insertion order.
func (r *Registry) List() []*table.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*table.Dataset, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, snapshot(r.datasets[id]))
	}
	return out
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Subscribe registers a change listener.
func (r *Registry) Subscribe(s Subscriber) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, s)
	r.mu.Unlock()
}

// snapshot copies the dataset header. Rows are shared deliberately: they are
// never written after Add, only membership and stored colors change.
func snapshot(ds *table.Dataset) *table.Dataset {
	out := *ds
	return &out
}

func (r *Registry) notify() {
	r.mu.RLock()
	subs := append([]Subscriber(nil), r.subscribers...)
	r.mu.RUnlock()
	for _, s := range subs {
		s()
	}
}
