package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Manifest describes datasets stored in a single YAML or JSON file.
// It uses "mapstructure" tags so YAML and JSON documents decode the same way.
type Manifest struct {
	Collections []CollectionSpec `mapstructure:"collections"`
}

// CollectionSpec declares one collection, its schemas and samples.
type CollectionSpec struct {
	Name          string         `mapstructure:"name"`
	MediaType     string         `mapstructure:"media_type"`
	FramesDataset bool           `mapstructure:"frames_dataset"`
	Schema        map[string]any `mapstructure:"schema"`
	FrameSchema   map[string]any `mapstructure:"frame_schema"`
	Samples       []SampleSpec   `mapstructure:"samples"`
}

// SampleSpec declares one sample. MediaType defaults to the collection's.
type SampleSpec struct {
	ID        string           `mapstructure:"id"`
	Filepath  string           `mapstructure:"filepath"`
	MediaType string           `mapstructure:"media_type"`
	Fields    map[string]any   `mapstructure:"fields"`
	Frame     *domain.FrameRef `mapstructure:"frame"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML (or JSON) manifest.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var m Manifest
	if err := mapstructure.Decode(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Build materializes the manifest into in-memory collections and registers
// their schemas in store.
func (m *Manifest) Build(ctx context.Context, store ports.SchemaStore) ([]*memory.Collection, error) {
	seen := make(map[string]bool, len(m.Collections))
	collections := make([]*memory.Collection, 0, len(m.Collections))

	for _, spec := range m.Collections {
		if seen[spec.Name] {
			return nil, fmt.Errorf("collection %q is declared twice", spec.Name)
		}
		seen[spec.Name] = true

		coll, err := spec.build()
		if err != nil {
			return nil, err
		}

		fields, err := DecodeSchema(spec.Schema)
		if err != nil {
			return nil, fmt.Errorf("collection %q schema: %w", spec.Name, err)
		}
		frames, err := DecodeSchema(spec.FrameSchema)
		if err != nil {
			return nil, fmt.Errorf("collection %q frame schema: %w", spec.Name, err)
		}
		if err := store.Put(ctx, spec.Name, fields, frames); err != nil {
			return nil, fmt.Errorf("failed to register schema of %q: %w", spec.Name, err)
		}

		collections = append(collections, coll)
	}
	return collections, nil
}

func (spec CollectionSpec) build() (*memory.Collection, error) {
	media, err := domain.ParseMediaType(spec.MediaType)
	if err != nil {
		return nil, fmt.Errorf("collection %q: %w", spec.Name, err)
	}

	var opts []memory.CollectionOption
	if spec.FramesDataset {
		opts = append(opts, memory.AsFramesDataset())
	}
	coll, err := memory.NewCollection(spec.Name, media, opts...)
	if err != nil {
		return nil, err
	}

	for i, ss := range spec.Samples {
		s, err := ss.build(media)
		if err != nil {
			return nil, fmt.Errorf("collection %q sample %d: %w", spec.Name, i, err)
		}
		if err := coll.Add(s); err != nil {
			return nil, err
		}
	}
	return coll, nil
}

func (ss SampleSpec) build(collectionMedia domain.MediaType) (*domain.Sample, error) {
	media := collectionMedia
	if ss.MediaType != "" {
		parsed, err := domain.ParseMediaType(ss.MediaType)
		if err != nil {
			return nil, err
		}
		media = parsed
	}

	id := ss.ID
	if id == "" {
		id = uuid.New().String()
	}

	fields, err := DecodeFields(ss.Fields)
	if err != nil {
		return nil, fmt.Errorf("sample %q: %w", id, err)
	}

	s, err := domain.NewSample(id, ss.Filepath, media, fields)
	if err != nil {
		return nil, err
	}
	s.Frame = ss.Frame
	return s, nil
}

// Loader reloads a manifest from disk on every Load.
type Loader struct {
	Path   string
	Logger *slog.Logger
}

// NewLoader creates a manifest loader for path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads the manifest and builds its collections.
func (l *Loader) Load(ctx context.Context, store ports.SchemaStore) ([]*memory.Collection, error) {
	m, err := Load(l.Path)
	if err != nil {
		return nil, err
	}
	return m.Build(ctx, store)
}

// Watch emits the manifest path on every change.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	return Watch(ctx, l.Path, l.Logger)
}
