package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/conform/pkg/adapters/file"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/loam"
)

// Loader builds one collection from a Loam repository of sample documents.
type Loader struct {
	Repo   *loam.TypedRepository[SampleMetadata]
	Name   string
	Media  domain.MediaType
	Frames bool
}

// New creates a new Loam adapter for the named collection.
func New(repo *loam.TypedRepository[SampleMetadata], name string, media domain.MediaType) *Loader {
	return &Loader{
		Repo:  repo,
		Name:  name,
		Media: media,
	}
}

// Load reads every document, registers the declared schemas in store and
// returns the populated collection.
func (l *Loader) Load(ctx context.Context, store ports.SchemaStore) ([]*memory.Collection, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	var opts []memory.CollectionOption
	if l.Frames {
		opts = append(opts, memory.AsFramesDataset())
	}
	coll, err := memory.NewCollection(l.Name, l.Media, opts...)
	if err != nil {
		return nil, err
	}

	fields := domain.Schema{}
	frames := domain.Schema{}
	seen := make(map[string]string)

	for _, doc := range docs {
		if doc.Data.Kind == KindSchema {
			if err := mergeSchema(fields, doc.Data.Schema); err != nil {
				return nil, fmt.Errorf("schema document %s: %w", doc.ID, err)
			}
			if err := mergeSchema(frames, doc.Data.FrameSchema); err != nil {
				return nil, fmt.Errorf("schema document %s: %w", doc.ID, err)
			}
			continue
		}

		id := doc.Data.ID
		if id == "" {
			id = trimExtension(doc.ID)
		}
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: sample ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID

		s, err := l.buildSample(id, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		if err := coll.Add(s); err != nil {
			return nil, err
		}
	}

	if err := store.Put(ctx, l.Name, fields, frames); err != nil {
		return nil, fmt.Errorf("failed to register schema of %q: %w", l.Name, err)
	}
	return []*memory.Collection{coll}, nil
}

func (l *Loader) buildSample(id string, meta SampleMetadata) (*domain.Sample, error) {
	media := l.Media
	if meta.MediaType != "" {
		parsed, err := domain.ParseMediaType(meta.MediaType)
		if err != nil {
			return nil, err
		}
		media = parsed
	}

	values, err := file.DecodeFields(meta.Fields)
	if err != nil {
		return nil, err
	}

	s, err := domain.NewSample(id, meta.Filepath, media, values)
	if err != nil {
		return nil, err
	}
	s.Frame = meta.Frame
	return s, nil
}

func mergeSchema(dst domain.Schema, raw map[string]any) error {
	decoded, err := file.DecodeSchema(raw)
	if err != nil {
		return err
	}
	for name, f := range decoded {
		if _, dup := dst[name]; dup {
			return fmt.Errorf("field %q is declared twice", name)
		}
		dst[name] = f
	}
	return nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}

// Watch emits the ID of each changed document.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
