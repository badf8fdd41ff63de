package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"

	"github.com/aretw0/conform/internal/testutils"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	testutils.SaveDocuments(t, repo, map[string]string{
		"_schema.md": `---
kind: schema
schema:
  label: Classification
frame_schema:
  detections: Detections
---
`,
		"a.md": `---
filepath: /data/a.jpg
fields:
  label:
    _cls: Classification
    label: cat
---
A cat.`,
		"b.md": `---
id: custom
filepath: /data/b.jpg
---
`,
	})

	loader := New(loam.NewTypedRepository[SampleMetadata](repo), "pets", domain.MediaImage)
	registry := memory.NewRegistry()

	colls, err := loader.Load(context.Background(), registry)
	require.NoError(t, err)
	require.Len(t, colls, 1)
	coll := colls[0]
	assert.Equal(t, "pets", coll.Name())
	assert.Equal(t, 2, coll.Len())

	a, err := coll.Get(context.Background(), "a")
	require.NoError(t, err)
	label, ok := a.Get("label")
	require.True(t, ok)
	assert.Equal(t, domain.TypeTag("Classification"), domain.TypeOf(label))

	_, err = coll.Get(context.Background(), "custom")
	assert.NoError(t, err)

	schema, err := registry.FieldSchema(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, []string{"label"}, schema.Names())

	frames, err := registry.FrameFieldSchema(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, []string{"detections"}, frames.Names())
}

func TestLoader_Load_Collision(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	testutils.SaveDocuments(t, repo, map[string]string{
		"a.md": "---\nfilepath: /data/a.jpg\n---\n",
		"b.md": "---\nid: a\nfilepath: /data/b.jpg\n---\n",
	})

	loader := New(loam.NewTypedRepository[SampleMetadata](repo), "pets", domain.MediaImage)
	_, err := loader.Load(context.Background(), memory.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision")
}

func TestLoader_Load_RejectsMixedMedia(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	testutils.SaveDocuments(t, repo, map[string]string{
		"clip.md": "---\nfilepath: /data/clip.mp4\nmedia_type: video\n---\n",
	})

	loader := New(loam.NewTypedRepository[SampleMetadata](repo), "pets", domain.MediaImage)
	_, err := loader.Load(context.Background(), memory.NewRegistry())
	assert.Error(t, err)
}
