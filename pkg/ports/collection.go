package ports

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
)

// SampleCollection is an ordered group of samples sharing one media type.
// Implementations opt in explicitly through the SampleCollection marker method,
// so that values which merely look alike are not mistaken for collections.
type SampleCollection interface {
	// SampleCollection marks the type as a sample collection.
	SampleCollection()

	// Name identifies the collection in errors and registry lookups.
	Name() string

	// MediaType applies uniformly to every sample of the collection.
	MediaType() domain.MediaType

	// IsFramesDataset reports whether the underlying dataset stores per-frame samples.
	IsFramesDataset() bool
}

// CollectionQuery fetches values from a collection.
type CollectionQuery interface {
	// FirstValue returns the value of field on the first element of the collection.
	// ok is false when the collection is empty; err reports query failures.
	FirstValue(ctx context.Context, coll SampleCollection, field string) (value any, ok bool, err error)
}

// Catalog resolves collections and samples by identity.
type Catalog interface {
	// Collections lists the names of all known collections.
	Collections(ctx context.Context) ([]string, error)

	// Collection returns the collection registered under name.
	// Returns domain.ErrCollectionNotFound if it does not exist.
	Collection(ctx context.Context, name string) (SampleCollection, error)

	// Sample returns one sample of the named collection.
	// Returns domain.ErrSampleNotFound if it does not exist.
	Sample(ctx context.Context, collection, sampleID string) (*domain.Sample, error)
}
