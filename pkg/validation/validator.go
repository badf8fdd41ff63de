package validation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// errNoClassifier and friends report missing collaborators; they are configuration
// errors, not validation failures.
var (
	errNoClassifier = errors.New("no media classifier configured")
	errNoRegistry   = errors.New("no schema registry configured")
	errNoQuery      = errors.New("no collection query configured")
)

// Validator runs conformance checks against externally owned samples and collections.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	registry   ports.SchemaRegistry
	classifier ports.MediaClassifier
	query      ports.CollectionQuery
	hooks      domain.ValidationHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Validator.
type Option func(*Validator)

// WithSchemaRegistry sets the registry used to resolve field schemas.
func WithSchemaRegistry(r ports.SchemaRegistry) Option {
	return func(v *Validator) {
		v.registry = r
	}
}

// WithClassifier sets the media-kind classifier used for frame images.
func WithClassifier(c ports.MediaClassifier) Option {
	return func(v *Validator) {
		v.classifier = c
	}
}

// WithQuery sets the query interface used to probe collection elements.
func WithQuery(q ports.CollectionQuery) Option {
	return func(v *Validator) {
		v.query = q
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.ValidationHooks) Option {
	return func(v *Validator) {
		v.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New creates a Validator with the given collaborators.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return v
}

// observe logs and reports the outcome of a call, returning err unchanged.
func (v *Validator) observe(ctx context.Context, op domain.Operation, subject string, err error) error {
	if err != nil {
		v.logger.Debug("validation failed",
			"op", op,
			"subject", subject,
			"kind", domain.KindName(err),
			"err", err,
		)
	}

	if v.hooks.OnValidate != nil {
		v.hooks.OnValidate(ctx, &domain.ValidationEvent{
			Timestamp: time.Now(),
			Op:        op,
			Subject:   subject,
			Err:       err,
		})
	}
	return err
}
