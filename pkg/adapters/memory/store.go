package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

type schemas struct {
	fields domain.Schema
	frames domain.Schema
}

// Registry implements ports.SchemaStore in memory.
// Safe for concurrent use.
type Registry struct {
	data map[string]schemas
	mu   sync.RWMutex
}

var (
	_ ports.SchemaStore  = (*Registry)(nil)
	_ ports.SchemaLister = (*Registry)(nil)
)

// NewRegistry creates a new in-memory schema registry.
func NewRegistry() *Registry {
	return &Registry{
		data: make(map[string]schemas),
	}
}

// Put stores copies of the schemas so callers can't mutate the registry by reference.
func (r *Registry) Put(ctx context.Context, collection string, fields, frames domain.Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[collection] = schemas{
		fields: copySchema(fields),
		frames: copySchema(frames),
	}
	return nil
}

// FieldSchema returns the sample-level schema of coll.
func (r *Registry) FieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	entry, err := r.lookup(coll.Name())
	if err != nil {
		return nil, err
	}
	return copySchema(entry.fields), nil
}

// FrameFieldSchema returns the frame-level schema of coll.
func (r *Registry) FrameFieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	entry, err := r.lookup(coll.Name())
	if err != nil {
		return nil, err
	}
	return copySchema(entry.frames), nil
}

// Delete removes the schemas of a collection.
func (r *Registry) Delete(ctx context.Context, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, collection)
	return nil
}

// List returns the registered collection names in sorted order.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.data))
	for name := range r.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) lookup(name string) (schemas, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.data[name]
	if !ok {
		return schemas{}, domain.ErrCollectionNotFound
	}
	return entry, nil
}

func copySchema(s domain.Schema) domain.Schema {
	out := make(domain.Schema, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
