package domain

import (
	"errors"
	"fmt"
)

// ErrType is returned when an object lacks a required capability or a type
// falls outside an allowed set.
var ErrType = errors.New("type error")

// ErrSchema is returned when a named field does not exist in the relevant schema.
var ErrSchema = errors.New("schema error")

// ErrMediaType is returned when a declared or classified media kind does not match.
var ErrMediaType = errors.New("media type error")

// ErrValue is returned when a field value is None but nulls are disallowed.
var ErrValue = errors.New("value error")

// ErrCollectionNotFound is returned when a collection name cannot be resolved.
var ErrCollectionNotFound = errors.New("collection not found")

// ErrSampleNotFound is returned when a sample ID cannot be found in a collection.
var ErrSampleNotFound = errors.New("sample not found")

// ValidationError represents a single validation failure.
// It unwraps to one of ErrType, ErrSchema, ErrMediaType or ErrValue.
type ValidationError struct {
	Kind    error    // Sentinel describing the failure class
	Subject string   // Sample or collection identity
	Fields  []string // Offending field names, if any
	Message string   // Human-readable description
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// KindName returns a short name for the failure class, used in logs, metrics and API payloads.
func (e *ValidationError) KindName() string {
	return KindName(e.Kind)
}

// KindName maps a sentinel (or an error wrapping one) to its short name.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrType):
		return "type"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrMediaType):
		return "media_type"
	case errors.Is(err, ErrValue):
		return "value"
	default:
		return "internal"
	}
}

// Errorf builds a ValidationError of the given kind.
func Errorf(kind error, subject string, fields []string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Subject: subject,
		Fields:  fields,
		Message: fmt.Sprintf(format, args...),
	}
}
