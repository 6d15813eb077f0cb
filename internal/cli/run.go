package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/deriv/internal/presentation/tui"
	"github.com/aretw0/deriv/pkg/runner"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	Headless bool
	REPL     bool
	// Format overrides the configured output format when set.
	Format string
	// Interactive enables the banner, markdown rendering and styled errors.
	Interactive bool
	Input       io.Reader
	Output      io.Writer
}

// Run reads expressions from opts.Input and prints their derivatives.
func Run(ctx context.Context, env *Env, opts RunOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	name := opts.Format
	if name == "" {
		name = env.Config.Format
	}
	format, err := runner.ParseFormat(name)
	if err != nil {
		return err
	}

	store, closeStore, err := env.Store()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			env.Logger.Warn("failed to close store", "err", err)
		}
	}()

	runnerOpts := []runner.Option{
		runner.WithEngine(NewEngine(env, store)),
		runner.WithLogger(env.Logger),
		runner.WithIO(opts.Input, opts.Output),
		runner.WithHeadless(opts.Headless),
		runner.WithREPL(opts.REPL),
		runner.WithFormat(format),
	}

	if opts.Interactive && !opts.Headless && !format.Structured() {
		if opts.REPL {
			tui.PrintBanner(opts.Output)
		}
		runnerOpts = append(runnerOpts,
			runner.WithRenderer(tui.NewRenderer()),
			runner.WithErrorFormatter(tui.FormatError),
		)
	}

	return runner.NewRunner(runnerOpts...).Run(ctx)
}
