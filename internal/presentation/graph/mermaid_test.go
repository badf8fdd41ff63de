package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/conform/internal/presentation/graph"
	"github.com/aretw0/conform/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	fields := domain.Schema{
		"ground_truth": {Name: "ground_truth", Type: "EmbeddedDocumentField", DocumentType: "Detections"},
		"label":        {Name: "label", Type: "Classification"},
	}
	frames := domain.Schema{
		"detections": {Name: "detections", Type: "Detections"},
	}

	tests := []struct {
		name     string
		frames   domain.Schema
		overlay  *graph.SchemaOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Field Shapes",
			contains: []string{
				"quick_start((\"quick-start <br/> image\"))",
				"quick_start__ground_truth[[\"ground_truth: Detections\"]]",
				"quick_start__label[\"label: Classification\"]",
				"quick_start --> quick_start__label",
			},
			excludes: []string{"frames"},
		},
		{
			name:   "Frame Fields",
			frames: frames,
			contains: []string{
				"quick_start_frames{{\"frames\"}}",
				"quick_start -.-> quick_start_frames",
				"quick_start_frames -.-> quick_start__frames_detections",
			},
		},
		{
			name:    "Failure Overlay",
			frames:  frames,
			overlay: &graph.SchemaOverlay{Failed: []string{"label", "frames.detections", "label"}},
			contains: []string{
				"classDef failed",
				"class quick_start__label failed;",
				"class quick_start__frames_detections failed;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid("quick-start", domain.MediaImage, fields, tt.frames, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q\n%s", unwanted, got)
				}
			}
			if n := strings.Count(got, "class quick_start__label failed;"); n > 1 {
				t.Errorf("overlay class applied %d times", n)
			}
		})
	}
}
