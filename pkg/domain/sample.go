package domain

import "fmt"

// Built-in field names every sample exposes through Get.
const (
	FieldID          = "id"
	FieldFilepath    = "filepath"
	FieldMediaType   = "media_type"
	FieldSampleID    = "sample_id"
	FieldFrameNumber = "frame_number"
)

// FramesPrefix qualifies a field name as frame-level on video collections.
const FramesPrefix = "frames."

// FrameRef links a frame view back to its parent video sample.
type FrameRef struct {
	SampleID    string `json:"sample_id" yaml:"sample_id" mapstructure:"sample_id"`
	FrameNumber int    `json:"frame_number" yaml:"frame_number" mapstructure:"frame_number"`
}

// Sample is one record of a dataset.
// MediaType is set at construction and must not change afterwards.
type Sample struct {
	ID        string         `json:"id" yaml:"id" mapstructure:"id"`
	Filepath  string         `json:"filepath" yaml:"filepath" mapstructure:"filepath"`
	MediaType MediaType      `json:"media_type" yaml:"media_type" mapstructure:"media_type"`
	Fields    map[string]any `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`

	// Frame is set when the sample is a frame view extracted from a video.
	Frame *FrameRef `json:"frame,omitempty" yaml:"frame,omitempty" mapstructure:"frame"`
}

// NewSample creates a sample, rejecting media types other than image and video.
func NewSample(id, filepath string, mediaType MediaType, fields map[string]any) (*Sample, error) {
	if !mediaType.IsDeclared() {
		return nil, fmt.Errorf("sample %q: invalid media type %q", id, mediaType)
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Sample{
		ID:        id,
		Filepath:  filepath,
		MediaType: mediaType,
		Fields:    fields,
	}, nil
}

// NewFrameView creates a frame view of the parent video sample.
// Its filepath refers to the extracted frame image.
func NewFrameView(id, filepath, parentID string, frameNumber int, fields map[string]any) (*Sample, error) {
	s, err := NewSample(id, filepath, MediaImage, fields)
	if err != nil {
		return nil, err
	}
	s.Frame = &FrameRef{SampleID: parentID, FrameNumber: frameNumber}
	return s, nil
}

// IsFrameView reports whether the sample represents one frame of a video.
func (s *Sample) IsFrameView() bool {
	return s.Frame != nil
}

// Get looks up a field by exact name. Built-in fields take precedence.
// The boolean is false when the field does not exist; an existing field may hold nil.
func (s *Sample) Get(name string) (any, bool) {
	switch name {
	case FieldID:
		return s.ID, true
	case FieldFilepath:
		return s.Filepath, true
	case FieldMediaType:
		return string(s.MediaType), true
	}

	if s.Frame != nil {
		switch name {
		case FieldSampleID:
			return s.Frame.SampleID, true
		case FieldFrameNumber:
			return s.Frame.FrameNumber, true
		}
	}

	v, ok := s.Fields[name]
	return v, ok
}

// FieldNames returns the user-defined field names of the sample.
func (s *Sample) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	return names
}
