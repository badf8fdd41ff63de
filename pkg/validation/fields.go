package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// SplitFrameFields partitions names into sample-level and frame-level groups.
// Frame-level names carry the domain.FramesPrefix, which is stripped.
func SplitFrameFields(names []string) (sampleFields, frameFields []string) {
	for _, name := range names {
		if strings.HasPrefix(name, domain.FramesPrefix) {
			frameFields = append(frameFields, strings.TrimPrefix(name, domain.FramesPrefix))
		} else {
			sampleFields = append(sampleFields, name)
		}
	}
	return sampleFields, frameFields
}

// ValidateCollectionLabelField validates a single field. It is the one-name form of
// ValidateCollectionLabelFields.
func (v *Validator) ValidateCollectionLabelField(ctx context.Context, obj any, name string, allowed domain.TypeSet, opts ...CheckOption) error {
	return v.ValidateCollectionLabelFields(ctx, obj, []string{name}, allowed, opts...)
}

// ValidateCollectionLabelFields checks that every named field exists in the
// collection's schema with a declared type in allowed.
//
// On video collections, names prefixed with "frames." are checked against the
// frame schema. SameType is enforced separately per group.
func (v *Validator) ValidateCollectionLabelFields(ctx context.Context, obj any, names []string, allowed domain.TypeSet, opts ...CheckOption) error {
	coll, err := guard(obj)
	if err != nil {
		return v.observe(ctx, domain.OpValidateLabelFields, subjectOf(nil, obj), err)
	}
	cfg := newCheckConfig(opts)
	return v.observe(ctx, domain.OpValidateLabelFields, coll.Name(), v.validateLabelFields(ctx, coll, names, allowed, cfg))
}

func (v *Validator) validateLabelFields(ctx context.Context, coll ports.SampleCollection, names []string, allowed domain.TypeSet, cfg checkConfig) error {
	sampleFields, frameFields := names, []string(nil)
	if coll.MediaType() == domain.MediaVideo {
		sampleFields, frameFields = SplitFrameFields(names)
	}

	if len(frameFields) > 0 {
		if err := v.validateFieldGroup(ctx, coll, frameFields, allowed, cfg.sameType, true); err != nil {
			return err
		}
	}
	if len(sampleFields) > 0 {
		if err := v.validateFieldGroup(ctx, coll, sampleFields, allowed, cfg.sameType, false); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateFieldGroup(ctx context.Context, coll ports.SampleCollection, names []string, allowed domain.TypeSet, sameType, frames bool) error {
	if v.registry == nil {
		return fmt.Errorf("collection %q: %w", coll.Name(), errNoRegistry)
	}

	var (
		schema domain.Schema
		err    error
	)
	if frames {
		schema, err = v.registry.FrameFieldSchema(ctx, coll)
	} else {
		schema, err = v.registry.FieldSchema(ctx, coll)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve schema of collection %q: %w", coll.Name(), err)
	}

	kind := "sample field"
	if frames {
		kind = "frame field"
	}

	resolved := make([]domain.TypeTag, 0, len(names))
	for _, name := range names {
		field, ok := schema.Lookup(name)
		if !ok {
			return domain.Errorf(domain.ErrSchema, coll.Name(), []string{name},
				"collection %q has no %s %q", coll.Name(), kind, name)
		}

		typ := field.Resolve()
		if !allowed.Contains(typ) {
			return domain.Errorf(domain.ErrType, coll.Name(), []string{name},
				"%s %q of collection %q is not a %s instance; found %s",
				capitalize(kind), name, coll.Name(), allowed, typ)
		}
		resolved = append(resolved, typ)
	}

	if sameType && !allSame(resolved) {
		return domain.Errorf(domain.ErrType, coll.Name(), names,
			"%ss %v of collection %q must have the same type; found %s",
			capitalize(kind), names, coll.Name(), describeTypes(names, resolved))
	}
	return nil
}

func allSame(types []domain.TypeTag) bool {
	for _, t := range types {
		if t != types[0] {
			return false
		}
	}
	return true
}

func describeTypes(names []string, types []domain.TypeTag) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, types[i])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
