package tests

import (
	"context"
	"testing"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// MediaClassifierContractTest is a reusable test suite that verifies if an adapter complies with ports.MediaClassifier.
// cases maps filepaths to the media type the classifier must report for them.
func MediaClassifierContractTest(t *testing.T, classifier ports.MediaClassifier, cases map[string]domain.MediaType) {
	t.Helper()
	ctx := context.Background()

	t.Run("Classify_Known", func(t *testing.T) {
		for path, want := range cases {
			got, err := classifier.Classify(ctx, path)
			if err != nil {
				t.Fatalf("unexpected error classifying %s: %v", path, err)
			}
			if got != want {
				t.Errorf("media type mismatch for %s. got %q, want %q", path, got, want)
			}
		}
	})

	t.Run("Classify_Deterministic", func(t *testing.T) {
		for path := range cases {
			first, _ := classifier.Classify(ctx, path)
			second, _ := classifier.Classify(ctx, path)
			if first != second {
				t.Errorf("classification of %s is not stable: %q then %q", path, first, second)
			}
		}
	})

	t.Run("Classify_NoExtension", func(t *testing.T) {
		got, err := classifier.Classify(ctx, "/data/no-extension")
		if err != nil {
			t.Fatalf("unexpected error classifying path without extension: %v", err)
		}
		if got.IsDeclared() {
			t.Errorf("expected an undeclared media type for a path without extension, got %q", got)
		}
	})
}
