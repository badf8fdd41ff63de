package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/muesli/termenv"
)

// Result is the outcome of one check in a report.
type Result struct {
	Check  string
	Target string
	Err    error
}

// OK reports whether the check passed.
func (r Result) OK() bool {
	return r.Err == nil
}

// MarkdownReport renders results as a Markdown table.
func MarkdownReport(title string, results []Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Check | Target | Status | Detail |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")

	for _, r := range results {
		status, detail := "pass", ""
		if !r.OK() {
			status = domain.KindName(r.Err)
			detail = describe(r.Err)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", cell(r.Check), cell(r.Target), status, cell(detail))
	}
	return sb.String()
}

// MarkdownValues renders fetched values as a Markdown table.
func MarkdownValues(sampleID string, values []domain.FieldValue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Sample `%s`\n\n", sampleID)
	sb.WriteString("| Field | Type | Value |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, v := range values {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", cell(v.Name), v.Type, cell(fmt.Sprintf("%v", v.Value)))
	}
	return sb.String()
}

// MarkdownSchema renders declared fields as Markdown tables.
func MarkdownSchema(collection string, fields, frames domain.Schema) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Collection `%s`\n\n", collection)
	writeSchema(&sb, "Sample fields", fields)
	if len(frames) > 0 {
		writeSchema(&sb, "Frame fields", frames)
	}
	return sb.String()
}

func writeSchema(sb *strings.Builder, title string, schema domain.Schema) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	sb.WriteString("| Field | Type | Resolves to |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, name := range schema.Names() {
		f := schema[name]
		fmt.Fprintf(sb, "| %s | %s | %s |\n", cell(name), f.Type, f.Resolve())
	}
	sb.WriteString("\n")
}

func describe(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// Printer writes reports, styled when the destination is a terminal.
type Printer struct {
	out     io.Writer
	render  func(string) (string, error)
	profile termenv.Profile
	styled  bool
}

// NewPrinter styles output only when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{out: out, profile: termenv.Ascii}
	if f, ok := out.(*os.File); ok && IsTerminal(f) {
		p.styled = true
		p.render = NewRenderer()
		p.profile = termenv.ColorProfile()
	}
	return p
}

// Markdown prints md, rendered with glamour on terminals.
func (p *Printer) Markdown(md string) error {
	if p.styled {
		rendered, err := p.render(md)
		if err == nil {
			md = rendered
		}
	}
	_, err := fmt.Fprintln(p.out, strings.TrimRight(md, "\n"))
	return err
}

// Status prints a one-line PASS or FAIL badge followed by msg.
func (p *Printer) Status(ok bool, msg string) {
	badge, color := "PASS", "#22c55e"
	if !ok {
		badge, color = "FAIL", "#ef4444"
	}

	if p.styled {
		fmt.Fprintf(p.out, "%s %s\n", termenv.String(" "+badge+" ").Bold().Foreground(p.profile.Color("#ffffff")).Background(p.profile.Color(color)), msg)
		return
	}
	fmt.Fprintf(p.out, "[%s] %s\n", badge, msg)
}
