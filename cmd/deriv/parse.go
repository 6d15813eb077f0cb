package main

import (
	"github.com/aretw0/deriv/internal/cli"
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Print the terms of an expression without differentiating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return cli.Parse(cmd.Context(), args[0], format, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
}
