package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/conform/pkg/domain"
)

// SchemaOverlay marks fields to highlight on the diagram.
type SchemaOverlay struct {
	// Failed holds field names from a validation failure; frame-level
	// names carry the "frames." prefix.
	Failed []string
}

// GenerateMermaid produces a Mermaid flowchart of a collection schema.
// It applies semantic styling:
// - Collection: ((Circle))
// - Embedded document field: [[Subroutine]]
// - Default: [Rectangle]
// Frame-level fields hang off a "frames" node with dotted edges.
func GenerateMermaid(collection string, media domain.MediaType, fields, frames domain.Schema, overlay *SchemaOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := sanitizeMermaidID(collection)
	sb.WriteString(fmt.Sprintf("    %s((\"%s <br/> %s\"))\n", root, collection, media))

	writeFields(&sb, root, root, "", fields, "-->")

	if len(frames) > 0 {
		framesID := root + "_frames"
		sb.WriteString(fmt.Sprintf("    %s{{\"frames\"}}\n", framesID))
		sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", root, framesID))
		writeFields(&sb, root, framesID, domain.FramesPrefix, frames, "-.->")
	}

	if overlay != nil && len(overlay.Failed) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef failed fill:#fee2e2,stroke:#b91c1c,stroke-width:3px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Failed {
			id := fieldID(root, name)
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
			}
		}
	}

	return sb.String()
}

func writeFields(sb *strings.Builder, root, parent, prefix string, schema domain.Schema, arrow string) {
	for _, name := range schema.Names() {
		f := schema[name]
		id := fieldID(root, prefix+name)

		opener, closer := "[", "]"
		if f.DocumentType != "" {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s: %s\"%s\n", id, opener, name, f.Resolve(), closer))
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, id))
	}
}

func fieldID(root, name string) string {
	return root + "__" + sanitizeMermaidID(name)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
