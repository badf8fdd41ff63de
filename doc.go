/*
Package conform validates media datasets: it checks that collections hold the
expected media, that declared label fields resolve to allowed types, and that
sample values read through the accessor have the types a caller requires.

The validation core lives in pkg/validation and depends only on the ports in
pkg/ports. This package wires it to concrete adapters: datasets come from a
YAML/JSON manifest or a Loam directory, schemas live in memory or Redis.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/conform"
		"github.com/aretw0/conform/pkg/adapters/file"
		"github.com/aretw0/conform/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		svc, err := conform.New(ctx, file.NewLoader("datasets.yaml"))
		if err != nil {
			log.Fatal(err)
		}

		err = svc.ValidateFields(ctx, domain.FieldCheck{
			Collection: "quickstart",
			Fields:     []string{"ground_truth"},
			Allowed:    []string{"Detections"},
		})
		if err != nil {
			log.Fatal(err)
		}
	}

# Errors

Validation failures unwrap to one of domain.ErrType, domain.ErrSchema,
domain.ErrMediaType or domain.ErrValue. Use errors.Is to branch on the kind.
*/
package conform
