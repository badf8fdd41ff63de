package validation

import (
	"context"
	"fmt"
	"reflect"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// ValidateCollection fails with domain.ErrType unless obj is a ports.SampleCollection.
func (v *Validator) ValidateCollection(ctx context.Context, obj any) error {
	coll, err := guard(obj)
	return v.observe(ctx, domain.OpValidateCollection, subjectOf(coll, obj), err)
}

// guard also rejects typed nil pointers, which satisfy the interface but
// cannot answer Name().
func guard(obj any) (ports.SampleCollection, error) {
	coll, ok := obj.(ports.SampleCollection)
	if !ok || coll == nil || isNilPointer(obj) {
		return nil, domain.Errorf(domain.ErrType, fmt.Sprintf("%T", obj), nil,
			"expected a sample collection; found %T", obj)
	}
	return coll, nil
}

func isNilPointer(obj any) bool {
	rv := reflect.ValueOf(obj)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func subjectOf(coll ports.SampleCollection, obj any) string {
	if coll != nil {
		return coll.Name()
	}
	return fmt.Sprintf("%T", obj)
}
