package ports

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
)

// MediaClassifier reports the media kind of a file.
// Results other than domain.MediaImage and domain.MediaVideo are allowed.
type MediaClassifier interface {
	Classify(ctx context.Context, filepath string) (domain.MediaType, error)
}

// ClassifierFunc adapts a function to the MediaClassifier interface.
type ClassifierFunc func(ctx context.Context, filepath string) (domain.MediaType, error)

func (f ClassifierFunc) Classify(ctx context.Context, filepath string) (domain.MediaType, error) {
	return f(ctx, filepath)
}
