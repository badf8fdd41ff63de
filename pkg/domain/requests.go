package domain

// MediaCheck asks whether a collection, or one of its samples, holds the given media.
// An empty MediaType checks only that the target is a sample collection.
type MediaCheck struct {
	Collection string    `json:"collection"`
	SampleID   string    `json:"sample_id,omitempty"`
	MediaType  MediaType `json:"media_type,omitempty"`
}

// FieldCheck asks whether declared collection fields resolve to allowed types.
// Names prefixed with "frames." address frame-level fields of video collections.
type FieldCheck struct {
	Collection string   `json:"collection"`
	Fields     []string `json:"fields"`
	Allowed    []string `json:"allowed"`
	SameType   bool     `json:"same_type,omitempty"`
}

// FieldQuery fetches sample values with optional type and null checks.
// An empty Allowed list accepts every type.
type FieldQuery struct {
	Collection   string   `json:"collection"`
	SampleID     string   `json:"sample_id"`
	Fields       []string `json:"fields"`
	Allowed      []string `json:"allowed,omitempty"`
	SameType     bool     `json:"same_type,omitempty"`
	DisallowNone bool     `json:"disallow_none,omitempty"`
}

// FieldValue is one fetched value in request order.
type FieldValue struct {
	Name  string  `json:"name"`
	Type  TypeTag `json:"type"`
	Value any     `json:"value"`
}
