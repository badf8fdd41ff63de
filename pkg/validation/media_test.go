package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustSample(t *testing.T, id, path string, media domain.MediaType) *domain.Sample {
	t.Helper()
	s, err := domain.NewSample(id, path, media, nil)
	require.NoError(t, err)
	return s
}

func TestValidateSampleMedia(t *testing.T) {
	ctx := context.Background()
	v := New()

	image := mustSample(t, "img", "/data/a.jpg", domain.MediaImage)
	video := mustSample(t, "vid", "/data/b.mp4", domain.MediaVideo)

	assert.NoError(t, v.ValidateImageSample(ctx, image))
	assert.NoError(t, v.ValidateVideoSample(ctx, video))

	err := v.ValidateImageSample(ctx, video)
	assert.ErrorIs(t, err, domain.ErrMediaType)
	assert.Contains(t, err.Error(), `"vid"`)
	assert.Contains(t, err.Error(), "/data/b.mp4")

	err = v.ValidateVideoSample(ctx, image)
	assert.ErrorIs(t, err, domain.ErrMediaType)
	assert.Contains(t, err.Error(), `"img"`)

	assert.ErrorIs(t, v.ValidateImageSample(ctx, nil), domain.ErrType)
	assert.ErrorIs(t, v.ValidateVideoSample(ctx, nil), domain.ErrType)
}

func TestValidateImageSample_FrameView(t *testing.T) {
	ctx := context.Background()

	frame, err := domain.NewFrameView("f1", "/frames/v1/000001.jpg", "v1", 1, nil)
	require.NoError(t, err)

	t.Run("Materialized", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("Classify", mock.Anything, "/frames/v1/000001.jpg").Return(domain.MediaImage, nil)

		v := New(WithClassifier(classifier))
		assert.NoError(t, v.ValidateImageSample(ctx, frame))
		classifier.AssertExpectations(t)
	})

	t.Run("Unmaterialized", func(t *testing.T) {
		unsampled, err := domain.NewFrameView("f2", "/videos/v1.mp4", "v1", 1, nil)
		require.NoError(t, err)

		classifier := new(MockClassifier)
		classifier.On("Classify", mock.Anything, "/videos/v1.mp4").Return(domain.MediaVideo, nil)

		v := New(WithClassifier(classifier))
		err = v.ValidateImageSample(ctx, unsampled)
		assert.ErrorIs(t, err, domain.ErrMediaType)
		assert.Contains(t, err.Error(), "frames view")
	})

	t.Run("Classifier Failure", func(t *testing.T) {
		boom := errors.New("disk on fire")
		classifier := new(MockClassifier)
		classifier.On("Classify", mock.Anything, mock.Anything).Return(domain.MediaUnknown, boom)

		v := New(WithClassifier(classifier))
		err := v.ValidateImageSample(ctx, frame)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrMediaType)
	})

	t.Run("Plain Sample Skips Classifier", func(t *testing.T) {
		classifier := new(MockClassifier)
		v := New(WithClassifier(classifier))

		assert.NoError(t, v.ValidateImageSample(ctx, mustSample(t, "img", "/data/a.mp4", domain.MediaImage)))
		classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	})
}

func TestValidateCollectionMedia(t *testing.T) {
	ctx := context.Background()
	v := New()

	images := &fakeCollection{name: "images", media: domain.MediaImage}
	videos := &fakeCollection{name: "videos", media: domain.MediaVideo}

	assert.NoError(t, v.ValidateImageCollection(ctx, images))
	assert.NoError(t, v.ValidateVideoCollection(ctx, videos))

	err := v.ValidateImageCollection(ctx, videos)
	assert.ErrorIs(t, err, domain.ErrMediaType)
	assert.Contains(t, err.Error(), `"videos"`)

	err = v.ValidateVideoCollection(ctx, images)
	assert.ErrorIs(t, err, domain.ErrMediaType)
	assert.Contains(t, err.Error(), `"images"`)
}

func TestValidateImageCollection_FramesDataset(t *testing.T) {
	ctx := context.Background()
	frames := &fakeCollection{name: "frames", media: domain.MediaImage, frames: true}

	t.Run("Empty Collection Never Classifies", func(t *testing.T) {
		classifier := new(MockClassifier)
		query := new(MockQuery)
		query.On("FirstValue", mock.Anything, frames, domain.FieldFilepath).Return(nil, false, nil)

		v := New(WithClassifier(classifier), WithQuery(query))
		assert.NoError(t, v.ValidateImageCollection(ctx, frames))

		query.AssertExpectations(t)
		classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	})

	t.Run("Sampled Frames", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("Classify", mock.Anything, "/frames/000001.png").Return(domain.MediaImage, nil)
		query := new(MockQuery)
		query.On("FirstValue", mock.Anything, frames, domain.FieldFilepath).Return("/frames/000001.png", true, nil)

		v := New(WithClassifier(classifier), WithQuery(query))
		assert.NoError(t, v.ValidateImageCollection(ctx, frames))
		classifier.AssertExpectations(t)
	})

	t.Run("Unsampled Frames", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("Classify", mock.Anything, "/videos/a.mp4").Return(domain.MediaVideo, nil)
		query := new(MockQuery)
		query.On("FirstValue", mock.Anything, frames, domain.FieldFilepath).Return("/videos/a.mp4", true, nil)

		v := New(WithClassifier(classifier), WithQuery(query))
		err := v.ValidateImageCollection(ctx, frames)
		assert.ErrorIs(t, err, domain.ErrMediaType)
		assert.Contains(t, err.Error(), "re-create the view")
		assert.Contains(t, err.Error(), "/videos/a.mp4")
	})

	t.Run("Query Failure Propagates", func(t *testing.T) {
		boom := errors.New("connection refused")
		classifier := new(MockClassifier)
		query := new(MockQuery)
		query.On("FirstValue", mock.Anything, frames, domain.FieldFilepath).Return(nil, false, boom)

		v := New(WithClassifier(classifier), WithQuery(query))
		err := v.ValidateImageCollection(ctx, frames)
		assert.ErrorIs(t, err, boom)
		classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	})

	t.Run("Media Checked Before Probe", func(t *testing.T) {
		query := new(MockQuery)
		videoFrames := &fakeCollection{name: "vf", media: domain.MediaVideo, frames: true}

		v := New(WithQuery(query))
		assert.ErrorIs(t, v.ValidateImageCollection(ctx, videoFrames), domain.ErrMediaType)
		query.AssertNotCalled(t, "FirstValue", mock.Anything, mock.Anything, mock.Anything)
	})
}
