package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/internal/presentation/graph"
	"github.com/aretw0/conform/internal/presentation/tui"
	"github.com/aretw0/conform/pkg/domain"
)

// MediaOptions selects collections, or one sample, to check against a media type.
type MediaOptions struct {
	Collections []string
	SampleID    string
	MediaType   string
}

// ValidateMedia checks every selected collection; all loaded collections when none are named.
func ValidateMedia(ctx context.Context, svc *conform.Service, rep *Reporter, opts MediaOptions) error {
	var media domain.MediaType
	if opts.MediaType != "" {
		parsed, err := domain.ParseMediaType(opts.MediaType)
		if err != nil {
			return err
		}
		media = parsed
	}
	if opts.SampleID != "" {
		if media == "" {
			return errors.New("--media is required with --sample")
		}
		if len(opts.Collections) != 1 {
			return errors.New("--sample requires exactly one collection")
		}
	}

	names := opts.Collections
	if len(names) == 0 {
		all, err := svc.Collections(ctx)
		if err != nil {
			return err
		}
		names = all
	}

	check := "collection"
	if media != "" {
		check = string(media) + " media"
	}

	results := make([]tui.Result, 0, len(names))
	for _, name := range names {
		target := name
		if opts.SampleID != "" {
			target = name + "/" + opts.SampleID
		}
		err := svc.ValidateMedia(ctx, domain.MediaCheck{Collection: name, SampleID: opts.SampleID, MediaType: media})
		if err != nil && !isCheckFailure(err) {
			return err
		}
		results = append(results, tui.Result{Check: check, Target: target, Err: err})
	}
	return rep.Checks("Media validation", results)
}

// FieldOptions describes a label field type check.
type FieldOptions struct {
	Collection string
	Fields     []string
	Allowed    []string
	SameType   bool
}

// ValidateFields checks declared field types of one collection.
func ValidateFields(ctx context.Context, svc *conform.Service, rep *Reporter, opts FieldOptions) error {
	if len(opts.Fields) == 0 || len(opts.Allowed) == 0 {
		return errors.New("at least one field and one allowed type are required")
	}

	err := svc.ValidateFields(ctx, domain.FieldCheck{
		Collection: opts.Collection,
		Fields:     opts.Fields,
		Allowed:    opts.Allowed,
		SameType:   opts.SameType,
	})
	if err != nil && !isCheckFailure(err) {
		return err
	}

	check := fmt.Sprintf("fields %v in %s", opts.Fields, domain.ParseTypeSet(opts.Allowed...))
	return rep.Checks("Field validation", []tui.Result{{Check: check, Target: opts.Collection, Err: err}})
}

// GetFields prints sample values, or the check failure that prevented reading them.
func GetFields(ctx context.Context, svc *conform.Service, rep *Reporter, q domain.FieldQuery) error {
	values, err := svc.GetFields(ctx, q)
	if err != nil {
		if !isCheckFailure(err) {
			return err
		}
		return rep.Checks("Field access", []tui.Result{{Check: fmt.Sprintf("get %v", q.Fields), Target: q.Collection + "/" + q.SampleID, Err: err}})
	}
	return rep.Values(q.SampleID, values)
}

// ListCollections prints the loaded collection names.
func ListCollections(ctx context.Context, svc *conform.Service, rep *Reporter) error {
	names, err := svc.Collections(ctx)
	if err != nil {
		return err
	}
	return rep.Collections(names)
}

// ListRegistered prints the collections registered in the schema registry.
func ListRegistered(ctx context.Context, svc *conform.Service, rep *Reporter) error {
	names, err := svc.Registered(ctx)
	if err != nil {
		return err
	}
	return rep.Collections(names)
}

// ShowSchema prints the declared fields of a collection. With check set, the
// fields failing the check are highlighted on the Mermaid diagram.
func ShowSchema(ctx context.Context, svc *conform.Service, rep *Reporter, name string, mermaid bool, check *FieldOptions) error {
	coll, err := svc.Catalog().Collection(ctx, name)
	if err != nil {
		return err
	}
	fields, frames, err := svc.Schema(ctx, name)
	if err != nil {
		return err
	}

	var overlay *graph.SchemaOverlay
	if check != nil {
		err := svc.ValidateFields(ctx, domain.FieldCheck{Collection: name, Fields: check.Fields, Allowed: check.Allowed, SameType: check.SameType})
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			overlay = &graph.SchemaOverlay{Failed: qualify(verr, fields, frames)}
		} else if err != nil {
			return err
		}
	}
	return rep.Schema(name, coll.MediaType(), fields, frames, mermaid, overlay)
}

// qualify restores the "frames." prefix of frame-level failures.
func qualify(verr *domain.ValidationError, fields, frames domain.Schema) []string {
	out := make([]string, 0, len(verr.Fields))
	for _, name := range verr.Fields {
		if _, ok := fields.Lookup(name); !ok {
			if _, ok := frames.Lookup(name); ok {
				name = domain.FramesPrefix + name
			}
		}
		out = append(out, name)
	}
	return out
}

func isCheckFailure(err error) bool {
	var verr *domain.ValidationError
	return errors.As(err, &verr)
}
