package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// Collection implements ports.SampleCollection over an in-memory slice of samples.
// Safe for concurrent use.
type Collection struct {
	name   string
	media  domain.MediaType
	frames bool

	mu      sync.RWMutex
	samples []*domain.Sample
	index   map[string]int
}

var _ ports.SampleCollection = (*Collection)(nil)

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// AsFramesDataset marks the collection as backed by a dataset of per-frame samples.
func AsFramesDataset() CollectionOption {
	return func(c *Collection) {
		c.frames = true
	}
}

// NewCollection creates an empty collection of the given media type.
func NewCollection(name string, media domain.MediaType, opts ...CollectionOption) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if !media.IsDeclared() {
		return nil, fmt.Errorf("collection %q: invalid media type %q", name, media)
	}

	c := &Collection{
		name:  name,
		media: media,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SampleCollection implements ports.SampleCollection.
func (c *Collection) SampleCollection() {}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// MediaType returns the media type shared by all samples.
func (c *Collection) MediaType() domain.MediaType { return c.media }

// IsFramesDataset reports whether the collection holds per-frame samples.
func (c *Collection) IsFramesDataset() bool { return c.frames }

// Add appends samples, rejecting duplicates and samples of another media type.
// Frames datasets hold image frame views, so their samples are not checked
// against the collection media type.
func (c *Collection) Add(samples ...*domain.Sample) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range samples {
		if s == nil {
			return fmt.Errorf("collection %q: nil sample", c.name)
		}
		if _, exists := c.index[s.ID]; exists {
			return fmt.Errorf("collection %q: duplicate sample %q", c.name, s.ID)
		}
		if !c.frames && s.MediaType != c.media {
			return fmt.Errorf("collection %q has media type %q; cannot add %q sample %q", c.name, c.media, s.MediaType, s.ID)
		}
		c.index[s.ID] = len(c.samples)
		c.samples = append(c.samples, s)
	}
	return nil
}

// Len returns the number of samples.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}

// Head returns up to n samples in insertion order.
func (c *Collection) Head(ctx context.Context, n int) ([]*domain.Sample, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n > len(c.samples) {
		n = len(c.samples)
	}
	out := make([]*domain.Sample, n)
	copy(out, c.samples[:n])
	return out, nil
}

// Get returns the sample with the given ID.
func (c *Collection) Get(ctx context.Context, id string) (*domain.Sample, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return nil, domain.ErrSampleNotFound
	}
	return c.samples[i], nil
}
