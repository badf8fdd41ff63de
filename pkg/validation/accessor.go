package validation

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
)

// GetField returns the value of a sample field.
//
// It fails with domain.ErrSchema if the field does not exist, with domain.ErrValue
// if the value is nil and DisallowNone is given, and with domain.ErrType if
// AllowedTypes is given and the value's runtime type is not a member.
func (v *Validator) GetField(ctx context.Context, s *domain.Sample, name string, opts ...CheckOption) (any, error) {
	if s == nil {
		return nil, v.observe(ctx, domain.OpGetField, "<nil>", nilSample())
	}
	value, err := getField(s, name, newCheckConfig(opts))
	return value, v.observe(ctx, domain.OpGetField, s.ID, err)
}

// GetFields applies GetField to each name in order and returns the values
// positionally aligned with names. SameType requires every value to share one
// runtime type.
func (v *Validator) GetFields(ctx context.Context, s *domain.Sample, names []string, opts ...CheckOption) ([]any, error) {
	if s == nil {
		return nil, v.observe(ctx, domain.OpGetFields, "<nil>", nilSample())
	}
	values, err := getFields(s, names, newCheckConfig(opts))
	return values, v.observe(ctx, domain.OpGetFields, s.ID, err)
}

func getField(s *domain.Sample, name string, cfg checkConfig) (any, error) {
	value, ok := s.Get(name)
	if !ok {
		return nil, domain.Errorf(domain.ErrSchema, s.ID, []string{name},
			"sample %q has no field %q", s.ID, name)
	}

	if !cfg.allowNone && value == nil {
		return nil, domain.Errorf(domain.ErrValue, s.ID, []string{name},
			"sample %q field %q is None", s.ID, name)
	}

	if cfg.allowedTypes != nil {
		if typ := domain.TypeOf(value); !cfg.allowedTypes.Contains(typ) {
			return nil, domain.Errorf(domain.ErrType, s.ID, []string{name},
				"sample %q field %q is not a %s instance; found %s", s.ID, name, cfg.allowedTypes, typ)
		}
	}

	return value, nil
}

func getFields(s *domain.Sample, names []string, cfg checkConfig) ([]any, error) {
	values := make([]any, 0, len(names))
	types := make([]domain.TypeTag, 0, len(names))
	for _, name := range names {
		value, err := getField(s, name, cfg)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		types = append(types, domain.TypeOf(value))
	}

	if cfg.sameType && !allSame(types) {
		return nil, domain.Errorf(domain.ErrType, s.ID, names,
			"sample %q fields %v must have the same type; found %s", s.ID, names, describeTypes(names, types))
	}
	return values, nil
}
