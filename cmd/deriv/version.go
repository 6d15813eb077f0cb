package main

import (
	"fmt"

	"github.com/aretw0/deriv"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of deriv",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "deriv version %s\n", deriv.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
