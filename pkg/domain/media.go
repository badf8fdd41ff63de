package domain

import (
	"fmt"
	"strings"
)

// MediaType is the kind of media a sample or collection holds.
// Classifiers may report values outside the declared kinds.
type MediaType string

const (
	MediaImage   MediaType = "image"
	MediaVideo   MediaType = "video"
	MediaUnknown MediaType = "unknown"
)

// IsDeclared reports whether m is a valid declared media type of a sample.
func (m MediaType) IsDeclared() bool {
	return m == MediaImage || m == MediaVideo
}

func (m MediaType) String() string {
	if m == "" {
		return string(MediaUnknown)
	}
	return string(m)
}

// ParseMediaType converts a raw string into a declared MediaType.
func ParseMediaType(raw string) (MediaType, error) {
	m := MediaType(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsDeclared() {
		return "", fmt.Errorf("invalid media type %q: expected %q or %q", raw, MediaImage, MediaVideo)
	}
	return m, nil
}
