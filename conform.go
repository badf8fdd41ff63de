package conform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/conform/pkg/adapters/media"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/validation"
)

// Version is the release of the conform module.
const Version = "0.4.0"

// Loader materializes collections and registers their schemas in store.
type Loader interface {
	Load(ctx context.Context, store ports.SchemaStore) ([]*memory.Collection, error)
}

// Watchable is implemented by loaders that can signal source changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Service is the high-level entry point for the conform library.
// It owns the loaded collections and a validator bound to them.
type Service struct {
	loader     Loader
	registry   ports.SchemaStore
	classifier ports.MediaClassifier
	hooks      domain.ValidationHooks
	logger     *slog.Logger

	catalog   *memory.Catalog
	validator *validation.Validator

	mu     sync.Mutex
	loaded []string
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithRegistry stores schemas in the given store instead of memory.
func WithRegistry(store ports.SchemaStore) Option {
	return func(s *Service) {
		s.registry = store
	}
}

// WithClassifier replaces the extension-based media classifier.
func WithClassifier(c ports.MediaClassifier) Option {
	return func(s *Service) {
		s.classifier = c
	}
}

// WithHooks registers validation hooks.
func WithHooks(hooks domain.ValidationHooks) Option {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service and performs the first load.
func New(ctx context.Context, loader Loader, opts ...Option) (*Service, error) {
	if loader == nil {
		return nil, errors.New("a dataset loader is required")
	}

	s := &Service{
		loader:  loader,
		catalog: memory.NewCatalog(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = memory.NewRegistry()
	}
	if s.classifier == nil {
		s.classifier = media.NewClassifier()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.validator = validation.New(
		validation.WithSchemaRegistry(s.registry),
		validation.WithClassifier(s.classifier),
		validation.WithQuery(memory.NewQuery()),
		validation.WithHooks(s.hooks),
		validation.WithLogger(s.logger),
	)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload loads the datasets again and swaps them in atomically.
// Schemas are staged in memory and published to the registry only after the
// whole load succeeded, so a failed reload leaves catalog and registry as they were.
// Schemas of collections that disappeared are removed from the registry.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staging := memory.NewRegistry()
	colls, err := s.loader.Load(ctx, staging)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	if err := s.publish(ctx, staging, colls); err != nil {
		return err
	}

	current := make(map[string]bool, len(colls))
	names := make([]string, 0, len(colls))
	for _, c := range colls {
		current[c.Name()] = true
		names = append(names, c.Name())
	}
	for _, old := range s.loaded {
		if current[old] {
			continue
		}
		if err := s.registry.Delete(ctx, old); err != nil && !errors.Is(err, domain.ErrCollectionNotFound) {
			s.logger.Warn("failed to drop stale schema", "collection", old, "err", err)
		}
	}

	s.catalog.Replace(colls...)
	s.loaded = names
	s.logger.Info("datasets loaded", "collections", len(colls))
	return nil
}

func (s *Service) publish(ctx context.Context, staging *memory.Registry, colls []*memory.Collection) error {
	for _, c := range colls {
		fields, err := staging.FieldSchema(ctx, c)
		if err != nil {
			return fmt.Errorf("collection %q was loaded without a schema: %w", c.Name(), err)
		}
		frames, err := staging.FrameFieldSchema(ctx, c)
		if err != nil {
			return fmt.Errorf("collection %q was loaded without a frame schema: %w", c.Name(), err)
		}
		if err := s.registry.Put(ctx, c.Name(), fields, frames); err != nil {
			return fmt.Errorf("failed to publish schema of %q: %w", c.Name(), err)
		}
	}
	return nil
}

// Watch reloads on every change reported by the loader and emits the
// changed source after each successful reload.
func (s *Service) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := s.loader.(Watchable)
	if !ok {
		return nil, errors.New("dataset loader does not support watching")
	}

	events, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case src, ok := <-events:
				if !ok {
					return
				}
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload failed", "source", src, "err", err)
					continue
				}
				select {
				case out <- src:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Catalog returns the loaded collections.
func (s *Service) Catalog() ports.Catalog {
	return s.catalog
}

// Validator returns the validator bound to the service registry.
func (s *Service) Validator() *validation.Validator {
	return s.validator
}

// Collections lists the loaded collection names.
func (s *Service) Collections(ctx context.Context) ([]string, error) {
	return s.catalog.Collections(ctx)
}

// Registered lists the collections whose schemas the registry holds. With a
// shared backend this includes collections registered by other processes.
func (s *Service) Registered(ctx context.Context) ([]string, error) {
	lister, ok := s.registry.(ports.SchemaLister)
	if !ok {
		return nil, errors.New("schema registry does not support listing")
	}
	return lister.List(ctx)
}

// Schema returns the declared sample-level and frame-level fields of a collection.
func (s *Service) Schema(ctx context.Context, name string) (fields, frames domain.Schema, err error) {
	coll, err := s.catalog.Collection(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if fields, err = s.registry.FieldSchema(ctx, coll); err != nil {
		return nil, nil, err
	}
	if frames, err = s.registry.FrameFieldSchema(ctx, coll); err != nil {
		return nil, nil, err
	}
	return fields, frames, nil
}

// ValidateMedia runs the media validator matching the check.
func (s *Service) ValidateMedia(ctx context.Context, check domain.MediaCheck) error {
	coll, err := s.catalog.Collection(ctx, check.Collection)
	if err != nil {
		return err
	}

	if check.SampleID != "" {
		sample, err := s.catalog.Sample(ctx, check.Collection, check.SampleID)
		if err != nil {
			return err
		}
		switch check.MediaType {
		case domain.MediaImage:
			return s.validator.ValidateImageSample(ctx, sample)
		case domain.MediaVideo:
			return s.validator.ValidateVideoSample(ctx, sample)
		default:
			return fmt.Errorf("a media type is required to check sample %q", check.SampleID)
		}
	}

	switch check.MediaType {
	case domain.MediaImage:
		return s.validator.ValidateImageCollection(ctx, coll)
	case domain.MediaVideo:
		return s.validator.ValidateVideoCollection(ctx, coll)
	case "":
		return s.validator.ValidateCollection(ctx, coll)
	default:
		return fmt.Errorf("invalid media type %q", check.MediaType)
	}
}

// ValidateFields checks declared field types of a collection.
func (s *Service) ValidateFields(ctx context.Context, check domain.FieldCheck) error {
	coll, err := s.catalog.Collection(ctx, check.Collection)
	if err != nil {
		return err
	}

	var opts []validation.CheckOption
	if check.SameType {
		opts = append(opts, validation.SameType())
	}
	return s.validator.ValidateCollectionLabelFields(ctx, coll, check.Fields, domain.ParseTypeSet(check.Allowed...), opts...)
}

// GetFields fetches sample values in request order.
func (s *Service) GetFields(ctx context.Context, q domain.FieldQuery) ([]domain.FieldValue, error) {
	sample, err := s.catalog.Sample(ctx, q.Collection, q.SampleID)
	if err != nil {
		return nil, err
	}

	var opts []validation.CheckOption
	if q.SameType {
		opts = append(opts, validation.SameType())
	}
	if q.DisallowNone {
		opts = append(opts, validation.DisallowNone())
	}
	if len(q.Allowed) > 0 {
		opts = append(opts, validation.AllowedTypes(domain.ParseTypeSet(q.Allowed...)))
	}

	values, verr := s.validator.GetFields(ctx, sample, q.Fields, opts...)
	out := make([]domain.FieldValue, 0, len(values))
	for i, v := range values {
		out = append(out, domain.FieldValue{Name: q.Fields[i], Type: domain.TypeOf(v), Value: v})
	}
	return out, verr
}
