package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Registry implements ports.SchemaStore using Redis.
// Each collection is stored as two hashes (sample fields and frame fields)
// mapping field names to JSON-encoded domain.Field values, plus a marker key.
type Registry struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var (
	_ ports.SchemaStore  = (*Registry)(nil)
	_ ports.SchemaLister = (*Registry)(nil)
)

type Option func(*Registry)

// WithTTL sets the expiration for registered schemas.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix for schemas.
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		r.prefix = prefix
	}
}

// WithLogger sets the logger used for background cleanup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a new Redis registry with options.
func New(address, password string, db int, opts ...Option) *Registry {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis registry from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Registry {
	r := &Registry{
		client: client,
		prefix: "conform:schema:",
		ttl:    0, // No expiration by default
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Registry) markerKey(collection string) string {
	return r.prefix + collection
}

func (r *Registry) fieldsKey(collection string) string {
	return r.prefix + collection + ":fields"
}

func (r *Registry) framesKey(collection string) string {
	return r.prefix + collection + ":frames"
}

func (r *Registry) indexKey() string {
	return r.prefix + "index"
}

// Put replaces the schemas of a collection in a single transaction.
func (r *Registry) Put(ctx context.Context, collection string, fields, frames domain.Schema) error {
	encodedFields, err := encodeSchema(fields)
	if err != nil {
		return fmt.Errorf("failed to encode schema of %q: %w", collection, err)
	}
	encodedFrames, err := encodeSchema(frames)
	if err != nil {
		return fmt.Errorf("failed to encode frame schema of %q: %w", collection, err)
	}

	pipe := r.client.TxPipeline()

	// 1. Drop previous registration
	pipe.Del(ctx, r.fieldsKey(collection), r.framesKey(collection))

	// 2. Write hashes (HSET rejects empty maps)
	if len(encodedFields) > 0 {
		pipe.HSet(ctx, r.fieldsKey(collection), encodedFields)
	}
	if len(encodedFrames) > 0 {
		pipe.HSet(ctx, r.framesKey(collection), encodedFrames)
	}

	// 3. Marker with TTL. Use 0 for no expiration if ttl is not set.
	pipe.Set(ctx, r.markerKey(collection), time.Now().UTC().Format(time.RFC3339), r.ttl)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.fieldsKey(collection), r.ttl)
		pipe.Expire(ctx, r.framesKey(collection), r.ttl)
	}

	// 4. Index for listing
	pipe.SAdd(ctx, r.indexKey(), collection)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save schema to redis: %w", err)
	}
	return nil
}

// FieldSchema returns the sample-level schema of coll.
func (r *Registry) FieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	return r.load(ctx, coll.Name(), r.fieldsKey(coll.Name()))
}

// FrameFieldSchema returns the frame-level schema of coll.
func (r *Registry) FrameFieldSchema(ctx context.Context, coll ports.SampleCollection) (domain.Schema, error) {
	return r.load(ctx, coll.Name(), r.framesKey(coll.Name()))
}

func (r *Registry) load(ctx context.Context, collection, key string) (domain.Schema, error) {
	n, err := r.client.Exists(ctx, r.markerKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check schema in redis: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrCollectionNotFound
	}

	raw, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema from redis: %w", err)
	}

	schema := make(domain.Schema, len(raw))
	for name, val := range raw {
		var f domain.Field
		if err := json.Unmarshal([]byte(val), &f); err != nil {
			return nil, fmt.Errorf("failed to unmarshal field %q of %q: %w", name, collection, err)
		}
		schema[name] = f
	}
	return schema, nil
}

// Delete removes the schemas of a collection.
func (r *Registry) Delete(ctx context.Context, collection string) error {
	pipe := r.client.Pipeline()

	pipe.Del(ctx, r.markerKey(collection), r.fieldsKey(collection), r.framesKey(collection))
	pipe.SRem(ctx, r.indexKey(), collection)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the registered collections in sorted order, dropping index
// entries whose schema expired.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	members, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	names := make([]string, 0, len(members))
	for _, name := range members {
		n, err := r.client.Exists(ctx, r.markerKey(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check schema in redis: %w", err)
		}
		if n == 0 {
			// Lazy cleanup of expired registrations
			if err := r.client.SRem(ctx, r.indexKey(), name).Err(); err != nil {
				r.logger.Warn("failed to drop expired schema from index", "collection", name, "err", err)
			}
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func encodeSchema(s domain.Schema) (map[string]any, error) {
	out := make(map[string]any, len(s))
	for name, f := range s {
		if f.Name == "" {
			f.Name = name
		}
		data, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		out[name] = string(data)
	}
	return out, nil
}
