/*
Package ports defines the driven ports (interfaces) of the Conform validators.

These interfaces decouple the validation core from the dataset engine that owns
samples and collections, allowing the same validators to run against in-memory
datasets, Redis-backed schema registries or file manifests.

# Key Interfaces

  - SampleCollection: the capability a value must opt into to be treated as a collection.
  - SchemaRegistry: resolves sample-level and frame-level field schemas of a collection.
  - MediaClassifier: reports the media kind of a filepath.
  - CollectionQuery: fetches the first element's value of a field.
  - Catalog: resolves collections and samples by name, for the outer surfaces.
*/
package ports
