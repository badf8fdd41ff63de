package conform_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/dsl"
)

func Example() {
	b := dsl.New()
	b.Collection("quickstart", domain.MediaImage).
		Embedded("ground_truth", "Detections").
		Field("label", "Classification")

	ctx := context.Background()
	svc, err := conform.New(ctx, b)
	if err != nil {
		panic(err)
	}

	err = svc.ValidateFields(ctx, domain.FieldCheck{
		Collection: "quickstart",
		Fields:     []string{"ground_truth"},
		Allowed:    []string{"Detections"},
	})
	fmt.Println("ground_truth:", err == nil)

	err = svc.ValidateFields(ctx, domain.FieldCheck{
		Collection: "quickstart",
		Fields:     []string{"label"},
		Allowed:    []string{"Detections"},
	})
	fmt.Println("label is a type error:", errors.Is(err, domain.ErrType))

	// Output:
	// ground_truth: true
	// label is a type error: true
}

func ExampleService_GetFields() {
	b := dsl.New()
	b.Collection("quickstart", domain.MediaImage).
		Sample("s1", "/data/000001.jpg").
		Label("ground_truth", "Detections", nil).
		Set("uniqueness", 0.42)

	ctx := context.Background()
	svc, err := conform.New(ctx, b)
	if err != nil {
		panic(err)
	}

	values, err := svc.GetFields(ctx, domain.FieldQuery{
		Collection: "quickstart",
		SampleID:   "s1",
		Fields:     []string{"ground_truth", "uniqueness", "filepath"},
	})
	if err != nil {
		panic(err)
	}
	for _, v := range values {
		fmt.Println(v.Name, v.Type)
	}

	// Output:
	// ground_truth Detections
	// uniqueness float64
	// filepath string
}
