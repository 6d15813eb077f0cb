package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/deriv"
)

const (
	welcomeLine = "Welcome to the symbolic differentiator for polynomial expressions of one variable!"
	askLine     = "Please enter your function to differentiate:"
	replLine    = "Enter one function per line. Type \"exit\" or press Ctrl+D to quit."
	replPrompt  = "> "
)

// ErrNoInput is returned in single-line mode when the input ends before a line is read.
var ErrNoInput = errors.New("no expression to differentiate")

// Runner reads expressions and prints their derivatives.
// It uses an IOHandler strategy to abstract the presentation mode.
type Runner struct {
	// Handler is the strategy for IO. If nil, one is built from the fields below.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	Input          io.Reader
	Output         io.Writer
	Headless       bool
	REPL           bool
	Format         Format
	Renderer       ContentRenderer
	ErrorFormatter ErrorFormatter

	engine *deriv.Engine
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Format: FormatText,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run derives one line, or every line until EOF/"exit"/"quit" in REPL mode.
// In single-line mode a syntax error is displayed and returned; in REPL mode
// it is displayed and the loop continues.
func (r *Runner) Run(ctx context.Context) error {
	if r.engine == nil {
		return errors.New("runner: no engine configured")
	}
	handler := r.resolveHandler()
	if r.Handler == nil {
		// Handlers built here are owned by this run.
		if c, ok := handler.(io.Closer); ok {
			defer c.Close()
		}
	}

	for {
		line, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if r.REPL {
					return nil
				}
				return ErrNoInput
			}
			if isRejectedInput(err) {
				r.Logger.Debug("input rejected", "err", err)
				if herr := handler.Error(ctx, "", err); herr != nil {
					return fmt.Errorf("output error: %w", herr)
				}
				if r.REPL {
					continue
				}
			}
			return err
		}

		if r.REPL {
			switch strings.TrimSpace(line) {
			case "exit", "quit":
				return nil
			case "":
				continue
			}
		}

		d, err := r.engine.Derive(ctx, line)
		if err != nil {
			r.Logger.Debug("derivation failed", "expression", line, "err", err)
			if herr := handler.Error(ctx, line, err); herr != nil {
				return fmt.Errorf("output error: %w", herr)
			}
			if r.REPL {
				continue
			}
			return err
		}

		if err := handler.Output(ctx, d); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		if !r.REPL {
			return nil
		}
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}

	if r.Format.Structured() {
		r.Handler = NewStructuredHandler(r.Input, r.Output, r.Format)
		return r.Handler
	}

	opts := []TextHandlerOption{
		WithTextHandlerFormat(r.Format),
		WithTextHandlerRenderer(r.Renderer),
		WithTextHandlerBare(r.Headless),
	}
	if r.ErrorFormatter != nil {
		opts = append(opts, WithTextHandlerErrorFormatter(r.ErrorFormatter))
	}

	if !r.Headless && r.Output != nil {
		fmt.Fprintln(r.Output, welcomeLine)
		if r.REPL {
			fmt.Fprintln(r.Output, replLine)
			opts = append(opts, WithTextHandlerPrompt(replPrompt))
		} else {
			fmt.Fprintln(r.Output, askLine)
		}
	}

	// Memoize so repeated Run calls share one input pump.
	r.Handler = NewTextHandler(r.Input, r.Output, opts...)
	return r.Handler
}

func isRejectedInput(err error) bool {
	return errors.Is(err, ErrInputTooLarge) || errors.Is(err, ErrInvalidUTF8)
}
