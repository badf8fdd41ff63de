/*
Package domain contains the core data model read by the Conform validators.

It defines samples, media kinds, declared field types and the validation error
taxonomy. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles: datasets are owned
by the surrounding engine and only read here.

# Key Entities

  - Sample: one record with an ID, a media kind, a filepath and user fields.
    A sample with a FrameRef is a frame view of a parent video sample.
  - Field / Schema: declared field types of a collection, with optional
    document type unwrapping.
  - TypeTag / TypeSet: names of declared or runtime types and sets of them.
  - ValidationError: the typed failure returned by every validator.
*/
package domain
