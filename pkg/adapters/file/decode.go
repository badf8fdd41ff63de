package file

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// labelKey marks a field value as a typed label document.
const labelKey = "_cls"

// DecodeSchema converts raw schema entries into a domain.Schema.
// An entry is either a type name ("Classification") or a map with
// "type" and optional "document_type".
func DecodeSchema(raw map[string]any) (domain.Schema, error) {
	schema := make(domain.Schema, len(raw))
	for name, entry := range raw {
		var f domain.Field
		switch v := entry.(type) {
		case string:
			f.Type = domain.TypeTag(v)
		case map[string]any:
			if err := mapstructure.Decode(v, &f); err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
		default:
			return nil, fmt.Errorf("field %q: expected a type name or a map, got %T", name, entry)
		}

		if f.Type == "" {
			return nil, fmt.Errorf("field %q: type is required", name)
		}
		f.Name = name
		schema[name] = f
	}
	return schema, nil
}

// DecodeFields converts raw sample field values, turning "_cls" documents into
// domain.Label values and json.Number into int or float64. Lists are decoded
// element-wise.
func DecodeFields(raw map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(raw))
	for name, v := range raw {
		decoded, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = decoded
	}
	return fields, nil
}

func decodeValue(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		if _, ok := val[labelKey]; !ok {
			return val, nil
		}
		var label domain.Label
		if err := mapstructure.Decode(val, &label); err != nil {
			return nil, err
		}
		if label.Type == "" {
			return nil, fmt.Errorf("label document has an empty %s", labelKey)
		}
		return label, nil
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, sub := range val {
			converted[fmt.Sprint(k)] = sub
		}
		return decodeValue(converted)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			decoded, err := decodeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = decoded
		}
		return out, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i), nil
		}
		return val.Float64()
	default:
		return v, nil
	}
}
