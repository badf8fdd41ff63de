package domain

import (
	"context"
	"time"
)

// Operation names the validator that produced an event.
type Operation string

const (
	OpValidateImageSample     Operation = "validate_image_sample"
	OpValidateVideoSample     Operation = "validate_video_sample"
	OpValidateCollection      Operation = "validate_collection"
	OpValidateImageCollection Operation = "validate_image_collection"
	OpValidateVideoCollection Operation = "validate_video_collection"
	OpValidateLabelFields     Operation = "validate_collection_label_fields"
	OpGetField                Operation = "get_field"
	OpGetFields               Operation = "get_fields"
)

// ValidationEvent describes the outcome of one validator call.
type ValidationEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Op        Operation `json:"op"`
	Subject   string    `json:"subject"`
	Err       error     `json:"-"`
}

// Failed reports whether the call returned an error.
func (e *ValidationEvent) Failed() bool {
	return e.Err != nil
}

// ValidationHooks defines callbacks for validator observability.
type ValidationHooks struct {
	OnValidate func(context.Context, *ValidationEvent)
}
