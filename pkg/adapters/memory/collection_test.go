package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T, id, path string, media domain.MediaType) *domain.Sample {
	t.Helper()
	s, err := domain.NewSample(id, path, media, nil)
	require.NoError(t, err)
	return s
}

func TestCollection_Add(t *testing.T) {
	_, err := memory.NewCollection("bad", domain.MediaType("audio"))
	assert.Error(t, err)

	coll, err := memory.NewCollection("images", domain.MediaImage)
	require.NoError(t, err)

	require.NoError(t, coll.Add(sample(t, "a", "/a.jpg", domain.MediaImage)))
	assert.Error(t, coll.Add(sample(t, "a", "/a2.jpg", domain.MediaImage)), "duplicate ID")
	assert.Error(t, coll.Add(sample(t, "v", "/v.mp4", domain.MediaVideo)), "media type must match")
	assert.Equal(t, 1, coll.Len())

	s, err := coll.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "/a.jpg", s.Filepath)

	_, err = coll.Get(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrSampleNotFound)
}

func TestQuery_FirstValue(t *testing.T) {
	ctx := context.Background()
	q := memory.NewQuery()

	frames, err := memory.NewCollection("frames", domain.MediaImage, memory.AsFramesDataset())
	require.NoError(t, err)
	assert.True(t, frames.IsFramesDataset())

	_, ok, err := q.FirstValue(ctx, frames, domain.FieldFilepath)
	require.NoError(t, err)
	assert.False(t, ok, "empty collection")

	f1, err := domain.NewFrameView("f1", "/frames/1.jpg", "v1", 1, nil)
	require.NoError(t, err)
	f2, err := domain.NewFrameView("f2", "/frames/2.jpg", "v1", 2, nil)
	require.NoError(t, err)
	require.NoError(t, frames.Add(f1, f2))

	value, ok, err := q.FirstValue(ctx, frames, domain.FieldFilepath)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/frames/1.jpg", value)

	_, _, err = q.FirstValue(ctx, frames, "nope")
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	images, err := memory.NewCollection("images", domain.MediaImage)
	require.NoError(t, err)
	require.NoError(t, images.Add(sample(t, "a", "/a.jpg", domain.MediaImage)))
	videos, err := memory.NewCollection("videos", domain.MediaVideo)
	require.NoError(t, err)

	catalog := memory.NewCatalog(videos, images)

	names, err := catalog.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"images", "videos"}, names)

	coll, err := catalog.Collection(ctx, "images")
	require.NoError(t, err)
	assert.Equal(t, domain.MediaImage, coll.MediaType())

	_, err = catalog.Collection(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

	s, err := catalog.Sample(ctx, "images", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", s.ID)

	_, err = catalog.Sample(ctx, "images", "b")
	assert.ErrorIs(t, err, domain.ErrSampleNotFound)

	catalog.Replace(videos)
	names, err = catalog.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"videos"}, names)
}
