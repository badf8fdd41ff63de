package loam

import "github.com/aretw0/conform/pkg/domain"

// KindSchema marks a document that declares the collection schema instead of a sample.
const KindSchema = "schema"

// SampleMetadata is the frontmatter of a dataset document.
// Documents are samples unless Kind is KindSchema.
type SampleMetadata struct {
	Kind string `json:"kind" mapstructure:"kind"`

	// Sample documents
	ID        string           `json:"id" mapstructure:"id"`
	Filepath  string           `json:"filepath" mapstructure:"filepath"`
	MediaType string           `json:"media_type" mapstructure:"media_type"`
	Fields    map[string]any   `json:"fields" mapstructure:"fields"`
	Frame     *domain.FrameRef `json:"frame,omitempty" mapstructure:"frame"`

	// Schema documents
	Schema      map[string]any `json:"schema" mapstructure:"schema"`
	FrameSchema map[string]any `json:"frame_schema" mapstructure:"frame_schema"`
}
