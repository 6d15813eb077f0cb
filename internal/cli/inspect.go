package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/internal/presentation/graph"
	"github.com/aretw0/deriv/pkg/domain"
	"gopkg.in/yaml.v3"
)

// parseOutput is the structured form written by Parse.
type parseOutput struct {
	Expression string        `json:"expression" yaml:"expression"`
	Key        string        `json:"key" yaml:"key"`
	Terms      []domain.Term `json:"terms" yaml:"terms"`
}

// Parse writes the terms of expression without differentiating it.
// Format is "text" (default), "json" or "yaml".
func Parse(ctx context.Context, expression, format string, w io.Writer) error {
	poly, err := deriv.New().Parse(ctx, expression)
	if err != nil {
		return err
	}
	out := parseOutput{Expression: expression, Key: deriv.Key(poly), Terms: poly}
	if out.Terms == nil {
		out.Terms = []domain.Term{}
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		fmt.Fprintf(w, "key: %s\n", out.Key)
		for i, t := range out.Terms {
			fmt.Fprintf(w, "%d. coefficient=%g exponent=%g\n", i+1, t.Coefficient, t.Exponent)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown parse format %q (want text, json or yaml)", format)
}

// Graph writes the parser state machine as a Mermaid flowchart.
// When trace is set, the states visited while reading it are highlighted.
func Graph(trace string, w io.Writer) error {
	var overlay *graph.Overlay
	if trace != "" {
		overlay = graph.NewOverlay(deriv.Trace(trace))
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(deriv.Transitions(), overlay))
	return err
}
