package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/deriv"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine used to derive each line.
func WithEngine(engine *deriv.Engine) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithIO sets the reader and writer used by the default handlers.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		r.Input = in
		r.Output = out
	}
}

// WithHeadless suppresses the banner, prompts and the result prefix.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithREPL keeps reading expressions until EOF, "exit" or "quit".
func WithREPL(repl bool) Option {
	return func(r *Runner) {
		r.REPL = repl
	}
}

// WithRenderer configures the content renderer (e.g. TUI, Markdown).
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithErrorFormatter configures how syntax errors are displayed.
func WithErrorFormatter(formatter ErrorFormatter) Option {
	return func(r *Runner) {
		r.ErrorFormatter = formatter
	}
}

// WithFormat selects the output format.
func WithFormat(format Format) Option {
	return func(r *Runner) {
		r.Format = format
	}
}
