package validation

import (
	"context"
	"fmt"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// ValidateImageSample fails with domain.ErrMediaType unless the sample is an image.
// Frame views are additionally classified by filepath, since a frames view may
// have been built without materialized frame images.
func (v *Validator) ValidateImageSample(ctx context.Context, s *domain.Sample) error {
	if s == nil {
		return v.observe(ctx, domain.OpValidateImageSample, "<nil>", nilSample())
	}
	return v.observe(ctx, domain.OpValidateImageSample, s.ID, v.validateImageSample(ctx, s))
}

func (v *Validator) validateImageSample(ctx context.Context, s *domain.Sample) error {
	if err := expectSampleMedia(s, domain.MediaImage); err != nil {
		return err
	}
	if s.IsFrameView() {
		return v.validateImage(ctx, s.ID, s.Filepath)
	}
	return nil
}

// ValidateVideoSample fails with domain.ErrMediaType unless the sample is a video.
func (v *Validator) ValidateVideoSample(ctx context.Context, s *domain.Sample) error {
	if s == nil {
		return v.observe(ctx, domain.OpValidateVideoSample, "<nil>", nilSample())
	}
	return v.observe(ctx, domain.OpValidateVideoSample, s.ID, expectSampleMedia(s, domain.MediaVideo))
}

// ValidateImageCollection guards obj, then fails with domain.ErrMediaType unless it
// is an image collection. For frames datasets the first element's filepath is
// classified; an empty collection passes.
func (v *Validator) ValidateImageCollection(ctx context.Context, obj any) error {
	coll, err := guard(obj)
	if err != nil {
		return v.observe(ctx, domain.OpValidateImageCollection, subjectOf(nil, obj), err)
	}
	return v.observe(ctx, domain.OpValidateImageCollection, coll.Name(), v.validateImageCollection(ctx, coll))
}

func (v *Validator) validateImageCollection(ctx context.Context, coll ports.SampleCollection) error {
	if err := expectCollectionMedia(coll.Name(), coll.MediaType(), domain.MediaImage); err != nil {
		return err
	}

	if !coll.IsFramesDataset() {
		return nil
	}

	if v.query == nil {
		return fmt.Errorf("collection %q: %w", coll.Name(), errNoQuery)
	}

	value, ok, err := v.query.FirstValue(ctx, coll, domain.FieldFilepath)
	if err != nil {
		return fmt.Errorf("failed to read first filepath of collection %q: %w", coll.Name(), err)
	}
	if !ok {
		return nil // empty
	}

	path, isString := value.(string)
	if !isString {
		return domain.Errorf(domain.ErrType, coll.Name(), []string{domain.FieldFilepath},
			"collection %q: first filepath is a %s, not a string", coll.Name(), domain.TypeOf(value))
	}
	return v.validateImage(ctx, coll.Name(), path)
}

// ValidateVideoCollection guards obj, then fails with domain.ErrMediaType unless it
// is a video collection.
func (v *Validator) ValidateVideoCollection(ctx context.Context, obj any) error {
	coll, err := guard(obj)
	if err != nil {
		return v.observe(ctx, domain.OpValidateVideoCollection, subjectOf(nil, obj), err)
	}
	err = expectCollectionMedia(coll.Name(), coll.MediaType(), domain.MediaVideo)
	return v.observe(ctx, domain.OpValidateVideoCollection, coll.Name(), err)
}

func (v *Validator) validateImage(ctx context.Context, subject, path string) error {
	if v.classifier == nil {
		return fmt.Errorf("%s: %w", subject, errNoClassifier)
	}

	actual, err := v.classifier.Classify(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to classify %q: %w", path, err)
	}
	if actual != domain.MediaImage {
		return domain.Errorf(domain.ErrMediaType, subject, []string{domain.FieldFilepath},
			"the requested operation requires samples whose filepaths are images, "+
				"but %s has filepath %q with media type %q.\n\n"+
				"If you are working with a frames view that was created without sampling "+
				"frames, re-create the view with frame sampling enabled so that the "+
				"necessary images will be available", subject, path, actual)
	}
	return nil
}

func expectSampleMedia(s *domain.Sample, want domain.MediaType) error {
	if s.MediaType != want {
		return domain.Errorf(domain.ErrMediaType, s.ID, nil,
			"sample %q: expected media type %q but found %q for filepath %q",
			s.ID, want, s.MediaType, s.Filepath)
	}
	return nil
}

func expectCollectionMedia(name string, got, want domain.MediaType) error {
	if got != want {
		return domain.Errorf(domain.ErrMediaType, name, nil,
			"expected collection %q to have media type %q; found %q", name, want, got)
	}
	return nil
}

func nilSample() error {
	return domain.Errorf(domain.ErrType, "<nil>", nil, "expected a sample; found nil")
}
