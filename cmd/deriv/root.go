package main

import (
	"fmt"
	"os"

	"github.com/aretw0/deriv/internal/cli"
	"github.com/aretw0/deriv/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deriv",
	Short: "deriv differentiates polynomial expressions of one variable",
	Long: `deriv parses polynomial expressions such as "3x^2 + 2x^1 - 5x^0" with a
character-level state machine and prints their derivative.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file (yaml, toml or json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and lifecycle hooks")
}

// setup loads configuration and logger from the persistent flags.
func setup(cmd *cobra.Command) (*cli.Env, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Setup(path, debug)
}
