package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrameFields(t *testing.T) {
	sampleFields, frameFields := SplitFrameFields([]string{"label", "frames.detections", "frames", "frames.gt"})

	assert.Equal(t, []string{"label", "frames"}, sampleFields)
	assert.Equal(t, []string{"detections", "gt"}, frameFields)

	sampleFields, frameFields = SplitFrameFields(nil)
	assert.Empty(t, sampleFields)
	assert.Empty(t, frameFields)
}

func TestValidateCollectionLabelFields_Image(t *testing.T) {
	ctx := context.Background()
	coll := &fakeCollection{name: "quickstart", media: domain.MediaImage}
	registry := staticRegistry{fields: domain.Schema{
		"ground_truth": {Name: "ground_truth", Type: "EmbeddedDocumentField", DocumentType: "Detections"},
		"predictions":  {Name: "predictions", Type: "EmbeddedDocumentField", DocumentType: "Detections"},
		"label":        {Name: "label", Type: "Classification"},
		"filepath":     {Name: "filepath", Type: "StringField"},
	}}
	v := New(WithSchemaRegistry(registry))
	detections := domain.NewTypeSet("Detections")

	tests := []struct {
		name    string
		fields  []string
		allowed domain.TypeSet
		opts    []CheckOption
		wantErr error
		wantMsg string
	}{
		{name: "document type unwrapped", fields: []string{"ground_truth"}, allowed: detections},
		{name: "multiple fields", fields: []string{"ground_truth", "predictions"}, allowed: detections, opts: []CheckOption{SameType()}},
		{name: "plain declared type", fields: []string{"label"}, allowed: domain.NewTypeSet("Classification")},
		{name: "empty names", fields: nil, allowed: detections},
		{name: "missing field", fields: []string{"ground_truth", "gt"}, allowed: detections, wantErr: domain.ErrSchema, wantMsg: `no sample field "gt"`},
		{name: "case sensitive", fields: []string{"Label"}, allowed: domain.NewTypeSet("Classification"), wantErr: domain.ErrSchema, wantMsg: `"Label"`},
		{name: "type not allowed", fields: []string{"label"}, allowed: detections, wantErr: domain.ErrType, wantMsg: "found Classification"},
		{name: "wrapper type is not compared", fields: []string{"ground_truth"}, allowed: domain.NewTypeSet("EmbeddedDocumentField"), wantErr: domain.ErrType},
		{
			name:    "same type mismatch",
			fields:  []string{"ground_truth", "label"},
			allowed: domain.NewTypeSet("Detections", "Classification"),
			opts:    []CheckOption{SameType()},
			wantErr: domain.ErrType,
			wantMsg: "Sample fields",
		},
		{
			name:    "mixed types without same type",
			fields:  []string{"ground_truth", "label"},
			allowed: domain.NewTypeSet("Detections", "Classification"),
		},
		{
			name:    "frames prefix is a plain name on image collections",
			fields:  []string{"frames.detections"},
			allowed: detections,
			wantErr: domain.ErrSchema,
			wantMsg: `"frames.detections"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCollectionLabelFields(ctx, coll, tt.fields, tt.allowed, tt.opts...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "quickstart")
		})
	}
}

func TestValidateCollectionLabelFields_MissingFieldIsNamed(t *testing.T) {
	coll := &fakeCollection{name: "ds", media: domain.MediaImage}
	v := New(WithSchemaRegistry(staticRegistry{fields: domain.Schema{
		"a": {Name: "a", Type: "Classification"},
	}}))

	err := v.ValidateCollectionLabelFields(context.Background(), coll, []string{"a", "b", "c"}, domain.NewTypeSet("Classification"))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.Equal(t, []string{"b"}, verr.Fields)
}

func TestValidateCollectionLabelFields_Video(t *testing.T) {
	ctx := context.Background()
	coll := &fakeCollection{name: "videos", media: domain.MediaVideo}
	allowed := domain.NewTypeSet("Classification", "Detections")

	t.Run("Groups Checked Independently", func(t *testing.T) {
		v := New(WithSchemaRegistry(staticRegistry{
			fields: domain.Schema{"label": {Name: "label", Type: "Classification"}},
			frames: domain.Schema{"detections": {Name: "detections", Type: "EmbeddedDocumentField", DocumentType: "Detections"}},
		}))
		names := []string{"label", "frames.detections"}

		assert.NoError(t, v.ValidateCollectionLabelFields(ctx, coll, names, allowed))
		assert.NoError(t, v.ValidateCollectionLabelFields(ctx, coll, names, allowed, SameType()))
	})

	t.Run("Frame Group Mismatch", func(t *testing.T) {
		v := New(WithSchemaRegistry(staticRegistry{
			fields: domain.Schema{
				"a": {Name: "a", Type: "Classification"},
				"b": {Name: "b", Type: "Classification"},
			},
			frames: domain.Schema{
				"x": {Name: "x", Type: "Detections"},
				"y": {Name: "y", Type: "Classification"},
			},
		}))

		err := v.ValidateCollectionLabelFields(ctx, coll, []string{"a", "b", "frames.x", "frames.y"}, allowed, SameType())
		require.ErrorIs(t, err, domain.ErrType)
		assert.Contains(t, err.Error(), "Frame fields")
		assert.NotContains(t, err.Error(), "Sample fields")

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"x", "y"}, verr.Fields)
	})

	t.Run("Missing Frame Field", func(t *testing.T) {
		v := New(WithSchemaRegistry(staticRegistry{
			fields: domain.Schema{"label": {Name: "label", Type: "Classification"}},
			frames: domain.Schema{},
		}))

		err := v.ValidateCollectionLabelFields(ctx, coll, []string{"label", "frames.detections"}, allowed)
		assert.ErrorIs(t, err, domain.ErrSchema)
		assert.Contains(t, err.Error(), `no frame field "detections"`)
	})

	t.Run("Single Name Overload", func(t *testing.T) {
		v := New(WithSchemaRegistry(staticRegistry{
			frames: domain.Schema{"detections": {Name: "detections", Type: "Detections"}},
		}))
		assert.NoError(t, v.ValidateCollectionLabelField(ctx, coll, "frames.detections", allowed))
	})
}

type failingRegistry struct{ err error }

func (r failingRegistry) FieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	return nil, r.err
}

func (r failingRegistry) FrameFieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	return nil, r.err
}

func TestValidateCollectionLabelFields_RegistryErrors(t *testing.T) {
	ctx := context.Background()
	coll := &fakeCollection{name: "ds", media: domain.MediaImage}

	boom := errors.New("registry down")
	v := New(WithSchemaRegistry(failingRegistry{err: boom}))
	err := v.ValidateCollectionLabelFields(ctx, coll, []string{"label"}, domain.NewTypeSet("Classification"))
	assert.ErrorIs(t, err, boom)

	unconfigured := New()
	err = unconfigured.ValidateCollectionLabelFields(ctx, coll, []string{"label"}, domain.NewTypeSet("Classification"))
	assert.ErrorIs(t, err, errNoRegistry)
}
