package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the conform banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   ___ ___  _ __  / _| ___  _ __ _ __ ___", "#34d399"},
		{"  / __/ _ \\| '_ \\| |_ / _ \\| '__| '_ ` _ \\", "#2dd4bf"},
		{" | (_| (_) | | | |  _| (_) | |  | | | | | |", "#22d3ee"},
		{"  \\___\\___/|_| |_|_|  \\___/|_|  |_| |_| |_|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+version).Faint())
}
