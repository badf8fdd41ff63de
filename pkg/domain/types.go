package domain

import (
	"reflect"
	"sort"
	"strings"
)

// TypeTag names a declared field type or the runtime type of a value
// (e.g. "Classification", "Detections", "string", "float64").
type TypeTag string

// TypeNone is the runtime type of a nil value.
const TypeNone TypeTag = "none"

// Typed is implemented by values that carry their own declared type, such as labels.
type Typed interface {
	TypeTag() TypeTag
}

// TypeOf returns the runtime TypeTag of a value.
func TypeOf(v any) TypeTag {
	if v == nil {
		return TypeNone
	}
	if t, ok := v.(Typed); ok {
		return t.TypeTag()
	}
	return TypeTag(reflect.TypeOf(v).String())
}

// TypeSet is a set of acceptable types.
type TypeSet map[TypeTag]struct{}

// NewTypeSet builds a set from the given tags.
func NewTypeSet(tags ...TypeTag) TypeSet {
	set := make(TypeSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// ParseTypeSet builds a set from raw type names, ignoring blanks.
func ParseTypeSet(names ...string) TypeSet {
	set := make(TypeSet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			set[TypeTag(n)] = struct{}{}
		}
	}
	return set
}

// Contains reports whether t is a member of the set.
func (s TypeSet) Contains(t TypeTag) bool {
	_, ok := s[t]
	return ok
}

// Tags returns the members in sorted order.
func (s TypeSet) Tags() []TypeTag {
	tags := make([]TypeTag, 0, len(s))
	for t := range s {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func (s TypeSet) String() string {
	parts := make([]string, 0, len(s))
	for _, t := range s.Tags() {
		parts = append(parts, string(t))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Field is a declared schema entry. When DocumentType is set, the field wraps
// an embedded document and DocumentType is the type validators compare against.
type Field struct {
	Name         string  `json:"name" yaml:"name" mapstructure:"name"`
	Type         TypeTag `json:"type" yaml:"type" mapstructure:"type"`
	DocumentType TypeTag `json:"document_type,omitempty" yaml:"document_type,omitempty" mapstructure:"document_type"`
}

// Resolve returns the type to compare against allowed sets.
func (f Field) Resolve() TypeTag {
	if f.DocumentType != "" {
		return f.DocumentType
	}
	return f.Type
}

// Schema maps field names to declared fields. Lookups are exact and case-sensitive.
type Schema map[string]Field

// Lookup returns the field declared under name.
func (s Schema) Lookup(name string) (Field, bool) {
	f, ok := s[name]
	return f, ok
}

// Names returns the declared field names in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Label is a typed annotation stored as a field value.
type Label struct {
	Type       TypeTag        `json:"_cls" yaml:"_cls" mapstructure:"_cls"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:",remain"`
}

// TypeTag implements Typed.
func (l Label) TypeTag() TypeTag {
	return l.Type
}
