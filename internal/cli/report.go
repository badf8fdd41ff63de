package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/conform/internal/presentation/graph"
	"github.com/aretw0/conform/internal/presentation/tui"
	"github.com/aretw0/conform/pkg/domain"
)

// ErrChecksFailed is returned after a report that contains failures.
var ErrChecksFailed = errors.New("one or more checks failed")

// Reporter prints command output as Markdown or JSON.
type Reporter struct {
	out     io.Writer
	printer *tui.Printer
	json    bool
}

// NewReporter writes to out; asJSON switches to machine-readable output.
func NewReporter(out io.Writer, asJSON bool) *Reporter {
	return &Reporter{out: out, printer: tui.NewPrinter(out), json: asJSON}
}

type checkJSON struct {
	Check   string   `json:"check"`
	Target  string   `json:"target"`
	Valid   bool     `json:"valid"`
	Kind    string   `json:"kind,omitempty"`
	Message string   `json:"message,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func toJSON(r tui.Result) checkJSON {
	c := checkJSON{Check: r.Check, Target: r.Target, Valid: r.OK()}
	if r.Err == nil {
		return c
	}
	c.Kind = domain.KindName(r.Err)
	c.Message = r.Err.Error()

	var verr *domain.ValidationError
	if errors.As(r.Err, &verr) {
		c.Message = verr.Message
		c.Fields = verr.Fields
	}
	return c
}

// Checks reports results and returns ErrChecksFailed if any failed.
func (r *Reporter) Checks(title string, results []tui.Result) error {
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	if r.json {
		out := make([]checkJSON, 0, len(results))
		for _, res := range results {
			out = append(out, toJSON(res))
		}
		if err := r.encode(out); err != nil {
			return err
		}
	} else {
		if err := r.printer.Markdown(tui.MarkdownReport(title, results)); err != nil {
			return err
		}
		r.printer.Status(failed == 0, fmt.Sprintf("%d of %d checks passed", len(results)-failed, len(results)))
	}

	if failed > 0 {
		return ErrChecksFailed
	}
	return nil
}

// Values reports fetched sample values.
func (r *Reporter) Values(sampleID string, values []domain.FieldValue) error {
	if r.json {
		return r.encode(map[string]any{"sample_id": sampleID, "values": values})
	}
	return r.printer.Markdown(tui.MarkdownValues(sampleID, values))
}

// Collections reports the loaded collection names.
func (r *Reporter) Collections(names []string) error {
	if r.json {
		return r.encode(map[string]any{"collections": names})
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(r.out, name); err != nil {
			return err
		}
	}
	return nil
}

// Schema reports declared fields as Markdown tables, a Mermaid diagram or JSON.
func (r *Reporter) Schema(collection string, media domain.MediaType, fields, frames domain.Schema, mermaid bool, overlay *graph.SchemaOverlay) error {
	switch {
	case r.json:
		return r.encode(map[string]any{"collection": collection, "media_type": media, "fields": fields, "frame_fields": frames})
	case mermaid:
		_, err := fmt.Fprint(r.out, graph.GenerateMermaid(collection, media, fields, frames, overlay))
		return err
	default:
		return r.printer.Markdown(tui.MarkdownSchema(collection, fields, frames))
	}
}

func (r *Reporter) encode(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
