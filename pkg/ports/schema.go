package ports

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
)

// SchemaRegistry resolves the declared field schemas of a collection.
type SchemaRegistry interface {
	// FieldSchema returns the sample-level schema.
	FieldSchema(ctx context.Context, coll SampleCollection) (domain.Schema, error)

	// FrameFieldSchema returns the frame-level schema of a video collection.
	FrameFieldSchema(ctx context.Context, coll SampleCollection) (domain.Schema, error)
}

// SchemaStore is a SchemaRegistry whose schemas can be written by name.
type SchemaStore interface {
	SchemaRegistry

	// Put registers the sample-level and frame-level schemas of a collection,
	// replacing any previous registration.
	Put(ctx context.Context, collection string, fields, frames domain.Schema) error

	// Delete removes the schemas of a collection.
	Delete(ctx context.Context, collection string) error
}

// SchemaLister is implemented by stores that can enumerate their registrations.
// A shared store (e.g. Redis) may list collections registered by other processes.
type SchemaLister interface {
	// List returns the registered collection names in sorted order.
	List(ctx context.Context) ([]string, error)
}
