package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contractCollection struct {
	name  string
	media domain.MediaType
}

func (c contractCollection) SampleCollection()           {}
func (c contractCollection) Name() string                { return c.name }
func (c contractCollection) MediaType() domain.MediaType { return c.media }
func (c contractCollection) IsFramesDataset() bool       { return false }

// RunSchemaStoreContract runs a suite of tests to verify that a SchemaStore implementation
// adheres to the defined interface contract.
func RunSchemaStoreContract(t *testing.T, store SchemaStore) {
	ctx := context.Background()
	name := "contract-test-collection-" + time.Now().Format("20060102150405")
	coll := contractCollection{name: name, media: domain.MediaVideo}

	fields := domain.Schema{
		"label":        {Name: "label", Type: "Classification"},
		"ground_truth": {Name: "ground_truth", Type: "EmbeddedDocumentField", DocumentType: "Detections"},
	}
	frames := domain.Schema{
		"detections": {Name: "detections", Type: "EmbeddedDocumentField", DocumentType: "Detections"},
	}

	t.Run("Put and Resolve", func(t *testing.T) {
		err := store.Put(ctx, name, fields, frames)
		require.NoError(t, err, "Put should not return error")

		got, err := store.FieldSchema(ctx, coll)
		require.NoError(t, err, "FieldSchema should not return error")
		assert.Equal(t, fields, got)

		gotFrames, err := store.FrameFieldSchema(ctx, coll)
		require.NoError(t, err, "FrameFieldSchema should not return error")
		assert.Equal(t, frames, gotFrames)
	})

	t.Run("Put Replaces", func(t *testing.T) {
		replacement := domain.Schema{"label": {Name: "label", Type: "Detections"}}
		require.NoError(t, store.Put(ctx, name, replacement, nil))

		got, err := store.FieldSchema(ctx, coll)
		require.NoError(t, err)
		assert.Equal(t, replacement, got)

		gotFrames, err := store.FrameFieldSchema(ctx, coll)
		require.NoError(t, err)
		assert.Empty(t, gotFrames)
	})

	t.Run("Resolve Non-Existent", func(t *testing.T) {
		ghost := contractCollection{name: "non-existent-" + name, media: domain.MediaImage}
		_, err := store.FieldSchema(ctx, ghost)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	if lister, ok := store.(SchemaLister); ok {
		t.Run("List", func(t *testing.T) {
			require.NoError(t, store.Put(ctx, name, fields, frames))

			names, err := lister.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, names, name)
			assert.IsIncreasing(t, names)
		})
	}

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, name, fields, frames))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.FieldSchema(ctx, coll)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound, "FieldSchema after Delete should return ErrCollectionNotFound")

		if lister, ok := store.(SchemaLister); ok {
			names, err := lister.List(ctx)
			require.NoError(t, err)
			assert.NotContains(t, names, name)
		}
	})
}
