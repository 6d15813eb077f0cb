package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the deriv ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to amber, one color per line.
	lines := []struct {
		text  string
		color string
	}{
		{"      _           _       ", "#2dd4bf"},
		{"   __| | ___ _ __(_)_   __", "#34d399"},
		{"  / _` |/ _ \\ '__| \\ \\ / /", "#a3e635"},
		{" | (_| |  __/ |  | |\\ V / ", "#facc15"},
		{"  \\__,_|\\___|_|  |_| \\_/  ", "#fb923c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
