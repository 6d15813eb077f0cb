package runner

import (
	"context"

	"github.com/aretw0/deriv/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and structured (JSON/YAML) modes.
type IOHandler interface {
	// Input reads one expression, without its line terminator.
	// io.EOF signals that no more input is available.
	Input(ctx context.Context) (string, error)

	// Output presents a successful derivation.
	Output(ctx context.Context, d *domain.Derivation) error

	// Error presents a failed derivation of input.
	Error(ctx context.Context, input string, err error) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// ErrorFormatter renders a failed input for humans, typically with a caret
// under the offending column.
type ErrorFormatter func(input string, err error) string
