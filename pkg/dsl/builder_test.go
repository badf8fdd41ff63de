package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Load(t *testing.T) {
	// 1. Build the dataset using DSL
	b := dsl.New()

	b.Collection("quickstart", domain.MediaImage).
		Embedded("ground_truth", "Detections").
		Field("label", "Classification").
		Sample("s1", "/data/a.jpg").
		Label("label", "Classification", map[string]any{"label": "cat"}).
		Set("score", 0.9)

	clips := b.Collection("clips", domain.MediaVideo).
		FrameField("detections", "Detections")
	clips.Sample("v1", "/data/clip.mp4")

	// Adding to an existing collection returns the same builder
	b.Collection("quickstart", domain.MediaImage).Sample("s2", "/data/b.png")

	// 2. Load into a registry
	registry := memory.NewRegistry()
	colls, err := b.Load(context.Background(), registry)
	require.NoError(t, err)
	require.Len(t, colls, 2)

	quickstart := colls[0]
	assert.Equal(t, "quickstart", quickstart.Name())
	assert.Equal(t, 2, quickstart.Len())

	s1, err := quickstart.Get(context.Background(), "s1")
	require.NoError(t, err)
	label, ok := s1.Get("label")
	require.True(t, ok)
	assert.Equal(t, domain.TypeTag("Classification"), domain.TypeOf(label))

	// 3. Verify schemas
	fields, err := registry.FieldSchema(context.Background(), quickstart)
	require.NoError(t, err)
	gt, ok := fields.Lookup("ground_truth")
	require.True(t, ok)
	assert.Equal(t, domain.TypeTag("EmbeddedDocumentField"), gt.Type)
	assert.Equal(t, domain.TypeTag("Detections"), gt.Resolve())

	frames, err := registry.FrameFieldSchema(context.Background(), colls[1])
	require.NoError(t, err)
	assert.Equal(t, []string{"detections"}, frames.Names())
}

func TestBuilder_FramesDataset(t *testing.T) {
	b := dsl.New()
	b.Collection("clip-frames", domain.MediaImage).
		Frames().
		Sample("f1", "/frames/v1/000001.jpg").
		FrameOf("v1", 1)

	colls, err := b.Load(context.Background(), memory.NewRegistry())
	require.NoError(t, err)
	require.Len(t, colls, 1)
	assert.True(t, colls[0].IsFramesDataset())

	f1, err := colls[0].Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.True(t, f1.IsFrameView())
	assert.Equal(t, domain.MediaImage, f1.MediaType)
}

func TestBuilder_RejectsMixedMedia(t *testing.T) {
	b := dsl.New()
	b.Collection("quickstart", domain.MediaImage).
		Sample("v1", "/data/clip.mp4").
		Media(domain.MediaVideo)

	_, err := b.Load(context.Background(), memory.NewRegistry())
	assert.Error(t, err)
}

func TestBuilder_AsLoader(t *testing.T) {
	b := dsl.New()
	b.Collection("quickstart", domain.MediaImage).
		Field("label", "Classification").
		Sample("s1", "/data/a.jpg").
		Label("label", "Classification", nil)

	svc, err := conform.New(context.Background(), b)
	require.NoError(t, err)

	err = svc.ValidateFields(context.Background(), domain.FieldCheck{
		Collection: "quickstart",
		Fields:     []string{"label"},
		Allowed:    []string{"Detections"},
	})
	assert.True(t, errors.Is(err, domain.ErrType))

	err = svc.ValidateMedia(context.Background(), domain.MediaCheck{Collection: "quickstart", MediaType: domain.MediaImage})
	assert.NoError(t, err)
}
