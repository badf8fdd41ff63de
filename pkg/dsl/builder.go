package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/conform/pkg/adapters/file"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// Builder manages the dataset construction.
type Builder struct {
	collections []*CollectionBuilder
	index       map[string]*CollectionBuilder
}

// New creates a new dataset builder.
func New() *Builder {
	return &Builder{
		index: make(map[string]*CollectionBuilder),
	}
}

// Collection creates a new collection in the dataset.
// If the collection already exists, it returns the existing builder.
func (b *Builder) Collection(name string, media domain.MediaType) *CollectionBuilder {
	if cb, ok := b.index[name]; ok {
		return cb
	}
	cb := &CollectionBuilder{
		spec: file.CollectionSpec{
			Name:        name,
			MediaType:   string(media),
			Schema:      make(map[string]any),
			FrameSchema: make(map[string]any),
		},
	}
	b.collections = append(b.collections, cb)
	b.index[name] = cb
	return cb
}

// Manifest returns the equivalent manifest, in declaration order.
func (b *Builder) Manifest() *file.Manifest {
	m := &file.Manifest{Collections: make([]file.CollectionSpec, 0, len(b.collections))}
	for _, cb := range b.collections {
		spec := cb.spec
		spec.Samples = make([]file.SampleSpec, 0, len(cb.samples))
		for _, sb := range cb.samples {
			spec.Samples = append(spec.Samples, sb.spec)
		}
		m.Collections = append(m.Collections, spec)
	}
	return m
}

// Load builds fresh collections and registers their schemas in store.
// It makes the builder usable as a conform.Loader.
func (b *Builder) Load(ctx context.Context, store ports.SchemaStore) ([]*memory.Collection, error) {
	collections, err := b.Manifest().Build(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}
	return collections, nil
}
