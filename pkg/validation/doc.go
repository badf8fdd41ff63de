/*
Package validation checks samples and collections against caller expectations.

A Validator groups four stateless checks:

  - Media kind: ValidateImageSample, ValidateVideoSample, ValidateImageCollection
    and ValidateVideoCollection assert the declared (and, for frame views,
    classified) media kind.
  - Collection guard: ValidateCollection asserts the collection capability;
    every collection check runs it first.
  - Field types: ValidateCollectionLabelFields resolves declared field types
    through a schema registry and checks them against an allowed set.
  - Field access: GetField and GetFields read sample values with existence,
    nil and type constraints.

Collaborators are injected as options:

	v := validation.New(
	    validation.WithSchemaRegistry(registry),
	    validation.WithClassifier(media.NewClassifier()),
	    validation.WithQuery(query),
	)

	err := v.ValidateCollectionLabelFields(ctx, coll,
	    []string{"ground_truth", "frames.detections"},
	    domain.NewTypeSet("Detections"),
	    validation.SameType(),
	)
	if errors.Is(err, domain.ErrSchema) {
	    // a field is missing
	}

Every validation failure is a *domain.ValidationError wrapping one of
domain.ErrType, domain.ErrSchema, domain.ErrMediaType or domain.ErrValue.
Collaborator failures are returned wrapped and are not validation errors.
*/
package validation
