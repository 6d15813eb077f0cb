package runner

import (
	"fmt"
	"strings"
)

// Format selects how a derivation is written.
type Format string

const (
	FormatText  Format = "text"
	FormatLaTeX Format = "latex"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatLaTeX, FormatJSON, FormatYAML}

// ParseFormat resolves a user-supplied format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, latex, json or yaml)", s)
}

// Structured reports whether the format is machine-readable.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}
