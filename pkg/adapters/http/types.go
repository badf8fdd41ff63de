package http

import "github.com/aretw0/conform/pkg/domain"

// CollectionList is the GET /collections response.
type CollectionList struct {
	Collections []string `json:"collections"`
}

// MediaRequest is the body of POST /collections/{name}/validate/media.
type MediaRequest struct {
	MediaType string `json:"media_type,omitempty"`
	SampleID  string `json:"sample_id,omitempty"`
}

// FieldsRequest is the body of POST /collections/{name}/validate/fields.
type FieldsRequest struct {
	Fields   []string `json:"fields"`
	Allowed  []string `json:"allowed"`
	SameType bool     `json:"same_type,omitempty"`
}

// ValuesRequest is the body of POST /collections/{name}/samples/{id}/fields.
type ValuesRequest struct {
	Fields       []string `json:"fields"`
	Allowed      []string `json:"allowed,omitempty"`
	SameType     bool     `json:"same_type,omitempty"`
	DisallowNone bool     `json:"disallow_none,omitempty"`
}

// ValuesResponse lists fetched values in request order.
type ValuesResponse struct {
	Values []domain.FieldValue `json:"values"`
}

// Valid is returned when a check passes.
type Valid struct {
	Valid bool `json:"valid"`
}

// Problem describes a failed request.
type Problem struct {
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}
