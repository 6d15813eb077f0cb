package main

import (
	"github.com/aretw0/deriv/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the parser state machine visualization",
	Long: `Outputs a Mermaid diagram (graph LR) of the parser transition table.
With --trace the states visited while reading the given expression are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, _ := cmd.Flags().GetString("trace")
		return cli.Graph(trace, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("trace", "", "Expression whose parse path is highlighted")
}
