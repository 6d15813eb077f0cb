package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/deriv/internal/runtime"
	"github.com/aretw0/deriv/pkg/domain"
)

// Overlay contains the states visited while reading one input.
type Overlay struct {
	Visited []domain.ParseState
	// Failed marks the last visited state as the one that rejected input.
	Failed bool
}

// NewOverlay builds an overlay from a parser trace.
func NewOverlay(trace []domain.ParseState, err error) *Overlay {
	return &Overlay{Visited: trace, Failed: err != nil}
}

// GenerateMermaid produces a Mermaid flowchart of the parser transition table.
// It applies semantic styling:
// - Entry: ((Circle))
// - Accepting state: (((Double circle)))
// - Other states: [Rectangle]
// Transitions that close a term are dotted.
func GenerateMermaid(transitions []domain.Transition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var states []domain.ParseState
	seen := make(map[domain.ParseState]bool)
	for _, t := range transitions {
		for _, s := range []domain.ParseState{t.From, t.To} {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}

	sb.WriteString("    entry((\"start\"))\n")
	for _, s := range states {
		opener, closer := "[", "]"
		if runtime.Accepting(s) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", s, opener, s, closer))
	}

	sb.WriteString(fmt.Sprintf("    entry --> %s\n", domain.ReadingCoefficient))
	for _, t := range transitions {
		label := strings.ReplaceAll(t.On, "\"", "'")
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if t.Closes {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", t.From, arrow, t.To))
	}

	if overlay != nil && len(overlay.Visited) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light fills.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		last := overlay.Visited[len(overlay.Visited)-1]
		styled := make(map[domain.ParseState]bool)
		for _, s := range overlay.Visited {
			if s == last || styled[s] {
				continue
			}
			styled[s] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", s))
		}

		class := "current"
		if overlay.Failed {
			class = "failed"
		}
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", last, class))
	}

	return sb.String()
}
