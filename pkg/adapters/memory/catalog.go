package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// Catalog implements ports.Catalog over in-memory collections.
// Safe for concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	collections map[string]*Collection
}

var _ ports.Catalog = (*Catalog)(nil)

// NewCatalog creates a catalog holding the given collections.
func NewCatalog(collections ...*Collection) *Catalog {
	c := &Catalog{collections: make(map[string]*Collection)}
	for _, coll := range collections {
		c.collections[coll.Name()] = coll
	}
	return c
}

// Add registers a collection, replacing one with the same name.
func (c *Catalog) Add(coll *Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections[coll.Name()] = coll
}

// Replace swaps the whole set of collections atomically.
func (c *Catalog) Replace(collections ...*Collection) {
	next := make(map[string]*Collection, len(collections))
	for _, coll := range collections {
		next[coll.Name()] = coll
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections = next
}

// Collections returns the collection names in sorted order.
func (c *Catalog) Collections(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.collections))
	for name := range c.collections {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

// Collection returns the named collection.
func (c *Catalog) Collection(ctx context.Context, name string) (ports.SampleCollection, error) {
	c.mu.RLock()
	coll, ok := c.collections[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return coll, nil
}

// Sample returns one sample of the named collection.
func (c *Catalog) Sample(ctx context.Context, collection, sampleID string) (*domain.Sample, error) {
	c.mu.RLock()
	coll, ok := c.collections[collection]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, collection)
	}

	s, err := coll.Get(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s", err, collection, sampleID)
	}
	return s, nil
}
