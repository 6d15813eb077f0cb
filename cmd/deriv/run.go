package main

import (
	"os"

	"github.com/aretw0/deriv/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Differentiate expressions read from standard input",
	Long: `Reads one expression from standard input and prints its derivative.
With --repl the command keeps reading lines until EOF, "exit" or "quit".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		repl, _ := cmd.Flags().GetBool("repl")
		format, _ := cmd.Flags().GetString("format")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err = cli.Run(ctx, env, cli.RunOptions{
			Headless:    headless,
			REPL:        repl,
			Format:      format,
			Interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
			Input:       os.Stdin,
			Output:      os.Stdout,
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, bare output)")
	runCmd.Flags().Bool("repl", false, "Keep reading expressions until EOF")
	runCmd.Flags().StringP("format", "f", "", "Output format: text, latex, json or yaml (default from config)")

	// 'run' is the default when no command is provided.
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.RunE = runCmd.RunE
}
