/*
Package runner implements the line-reading front end for the deriv engine.

It acts as the bridge between the Engine and a terminal or pipe: it reads a
line, strips its terminator, derives it and writes the result through a
pluggable IOHandler. Syntax errors are rendered with the offending column.

# Key Components

  - Runner: reads one expression (or loops in REPL mode) and prints the derivative.
  - IOHandler: decouples how results are presented (text, LaTeX, JSON, YAML).
  - TextHandler: human-oriented output with optional markdown rendering.
  - StructuredHandler: one JSON line or YAML document per derivation.

# Usage

	r := runner.NewRunner(
		runner.WithEngine(deriv.New()),
		runner.WithREPL(true),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
