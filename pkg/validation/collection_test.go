package validation

import (
	"context"
	"testing"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestValidateCollection(t *testing.T) {
	v := New()
	ctx := context.Background()

	assert.NoError(t, v.ValidateCollection(ctx, &fakeCollection{name: "ds", media: domain.MediaImage}))

	for _, obj := range []any{nil, "dataset", 42, lookalike{}, &domain.Sample{ID: "s1"}, (*fakeCollection)(nil)} {
		err := v.ValidateCollection(ctx, obj)
		assert.ErrorIs(t, err, domain.ErrType, "%T should be rejected", obj)
	}
}

func TestGuard_RunsBeforeAnyOtherCheck(t *testing.T) {
	classifier := new(MockClassifier)
	query := new(MockQuery)
	v := New(WithClassifier(classifier), WithQuery(query))
	ctx := context.Background()

	// No registry configured: reaching the schema lookup would return a
	// configuration error instead of ErrType.
	checks := map[string]func(obj any) error{
		"image collection": func(obj any) error { return v.ValidateImageCollection(ctx, obj) },
		"video collection": func(obj any) error { return v.ValidateVideoCollection(ctx, obj) },
		"label fields": func(obj any) error {
			return v.ValidateCollectionLabelFields(ctx, obj, []string{"label"}, domain.NewTypeSet("Classification"))
		},
		"label field": func(obj any) error {
			return v.ValidateCollectionLabelField(ctx, obj, "label", domain.NewTypeSet("Classification"))
		},
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			err := check(lookalike{})
			assert.ErrorIs(t, err, domain.ErrType)
			assert.Contains(t, err.Error(), "expected a sample collection")
		})
	}

	classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	query.AssertNotCalled(t, "FirstValue", mock.Anything, mock.Anything, mock.Anything)
}

func TestHooks_ReportOutcome(t *testing.T) {
	ctx := context.Background()
	var events []*domain.ValidationEvent
	v := New(WithHooks(domain.ValidationHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			events = append(events, e)
		},
	}))

	_ = v.ValidateCollection(ctx, &fakeCollection{name: "ds", media: domain.MediaImage})
	_ = v.ValidateCollection(ctx, "nope")

	if assert.Len(t, events, 2) {
		assert.Equal(t, domain.OpValidateCollection, events[0].Op)
		assert.Equal(t, "ds", events[0].Subject)
		assert.False(t, events[0].Failed())

		assert.Equal(t, "string", events[1].Subject)
		assert.True(t, events[1].Failed())
	}
}

type requestKey struct{}

func TestHooks_ReceiveCallerContext(t *testing.T) {
	var got []any
	v := New(WithHooks(domain.ValidationHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			got = append(got, ctx.Value(requestKey{}))
		},
	}))
	ctx := context.WithValue(context.Background(), requestKey{}, "req-1")

	video, err := domain.NewSample("v1", "/data/a.mp4", domain.MediaVideo, map[string]any{"x": 1})
	if err != nil {
		t.Fatal(err)
	}

	_ = v.ValidateCollection(ctx, &fakeCollection{name: "ds", media: domain.MediaImage})
	_ = v.ValidateVideoSample(ctx, video)
	_, _ = v.GetField(ctx, video, "x")
	_, _ = v.GetFields(ctx, video, []string{"x"})

	assert.Equal(t, []any{"req-1", "req-1", "req-1", "req-1"}, got)
}
