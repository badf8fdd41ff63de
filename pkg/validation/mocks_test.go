package validation

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/stretchr/testify/mock"
)

// fakeCollection is a minimal ports.SampleCollection.
type fakeCollection struct {
	name   string
	media  domain.MediaType
	frames bool
}

func (c *fakeCollection) SampleCollection()           {}
func (c *fakeCollection) Name() string                { return c.name }
func (c *fakeCollection) MediaType() domain.MediaType { return c.media }
func (c *fakeCollection) IsFramesDataset() bool       { return c.frames }

// lookalike has the collection methods but not the marker, so it must be rejected.
type lookalike struct{}

func (lookalike) Name() string                { return "lookalike" }
func (lookalike) MediaType() domain.MediaType { return domain.MediaImage }
func (lookalike) IsFramesDataset() bool       { return false }

// staticRegistry serves fixed schemas for every collection.
type staticRegistry struct {
	fields domain.Schema
	frames domain.Schema
}

func (r staticRegistry) FieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	return r.fields, nil
}

func (r staticRegistry) FrameFieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	return r.frames, nil
}

// MockClassifier simulates a ports.MediaClassifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, filepath string) (domain.MediaType, error) {
	args := m.Called(ctx, filepath)
	return args.Get(0).(domain.MediaType), args.Error(1)
}

// MockQuery simulates a ports.CollectionQuery.
type MockQuery struct {
	mock.Mock
}

func (m *MockQuery) FirstValue(ctx context.Context, coll ports.SampleCollection, field string) (any, bool, error) {
	args := m.Called(ctx, coll, field)
	return args.Get(0), args.Bool(1), args.Error(2)
}
