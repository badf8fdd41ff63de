package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// Header is implemented by collections that can return their first samples.
type Header interface {
	Head(ctx context.Context, n int) ([]*domain.Sample, error)
}

// Query implements ports.CollectionQuery for collections implementing Header.
type Query struct{}

var _ ports.CollectionQuery = Query{}

// NewQuery creates a new in-memory query.
func NewQuery() Query {
	return Query{}
}

// FirstValue returns field of the first sample; ok is false when the collection is empty.
func (Query) FirstValue(ctx context.Context, coll ports.SampleCollection, field string) (any, bool, error) {
	h, ok := coll.(Header)
	if !ok {
		return nil, false, fmt.Errorf("collection %q (%T) does not support element queries", coll.Name(), coll)
	}

	head, err := h.Head(ctx, 1)
	if err != nil {
		return nil, false, err
	}
	if len(head) == 0 {
		return nil, false, nil
	}

	value, exists := head[0].Get(field)
	if !exists {
		return nil, false, fmt.Errorf("sample %q of collection %q has no field %q", head[0].ID, coll.Name(), field)
	}
	return value, true, nil
}
