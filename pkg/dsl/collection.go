package dsl

import (
	"github.com/aretw0/conform/pkg/adapters/file"
	"github.com/aretw0/conform/pkg/domain"
)

// embeddedDocument is the declared type of fields wrapping an embedded label document.
const embeddedDocument = "EmbeddedDocumentField"

// CollectionBuilder provides a fluent API for configuring a collection.
type CollectionBuilder struct {
	spec    file.CollectionSpec
	samples []*SampleBuilder
}

// Frames marks the collection as a frames dataset of image frame views.
func (c *CollectionBuilder) Frames() *CollectionBuilder {
	c.spec.FramesDataset = true
	return c
}

// Field declares a sample-level field of the given type.
func (c *CollectionBuilder) Field(name string, fieldType domain.TypeTag) *CollectionBuilder {
	c.spec.Schema[name] = string(fieldType)
	return c
}

// Embedded declares a sample-level field wrapping an embedded document of documentType.
func (c *CollectionBuilder) Embedded(name string, documentType domain.TypeTag) *CollectionBuilder {
	c.spec.Schema[name] = map[string]any{"type": embeddedDocument, "document_type": string(documentType)}
	return c
}

// FrameField declares a frame-level field of the given type.
func (c *CollectionBuilder) FrameField(name string, fieldType domain.TypeTag) *CollectionBuilder {
	c.spec.FrameSchema[name] = string(fieldType)
	return c
}

// Sample adds a sample to the collection and returns its builder.
func (c *CollectionBuilder) Sample(id, filepath string) *SampleBuilder {
	sb := &SampleBuilder{
		spec: file.SampleSpec{
			ID:       id,
			Filepath: filepath,
			Fields:   make(map[string]any),
		},
	}
	c.samples = append(c.samples, sb)
	return sb
}

// SampleBuilder provides a fluent API for configuring a sample.
type SampleBuilder struct {
	spec file.SampleSpec
}

// Set stores a raw field value.
func (s *SampleBuilder) Set(name string, value any) *SampleBuilder {
	s.spec.Fields[name] = value
	return s
}

// Label stores a label of the given type with optional attributes.
func (s *SampleBuilder) Label(name string, labelType domain.TypeTag, attrs map[string]any) *SampleBuilder {
	s.spec.Fields[name] = domain.Label{Type: labelType, Attributes: attrs}
	return s
}

// Media overrides the collection media type for this sample.
func (s *SampleBuilder) Media(media domain.MediaType) *SampleBuilder {
	s.spec.MediaType = string(media)
	return s
}

// FrameOf marks the sample as a frame view of the parent video sample.
func (s *SampleBuilder) FrameOf(parentID string, frameNumber int) *SampleBuilder {
	s.spec.MediaType = string(domain.MediaImage)
	s.spec.Frame = &domain.FrameRef{SampleID: parentID, FrameNumber: frameNumber}
	return s
}
