/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing datasets.

It declares collections, their schemas and samples with a fluent builder instead of a
manifest file. This is particularly useful for unit testing and for embedding small
reference datasets in programs.

Example usage:

	b := dsl.New()

	b.Collection("quickstart", domain.MediaImage).
		Embedded("ground_truth", "Detections").
		Field("uniqueness", "FloatField").
		Sample("s1", "/data/000001.jpg").
		Label("ground_truth", "Detections", nil).
		Set("uniqueness", 0.42)

	b.Collection("clips", domain.MediaVideo).
		FrameField("detections", "Detections").
		Sample("v1", "/data/clip.mp4")

	// The builder is a conform.Loader
	svc, err := conform.New(ctx, b)
*/
package dsl
