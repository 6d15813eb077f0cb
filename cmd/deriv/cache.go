package main

import (
	"errors"

	"github.com/aretw0/deriv/internal/cli"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached derivations",
}

var cacheLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached expression keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		return cli.CacheList(cmd.Context(), env, cmd.OutOrStdout())
	},
}

var cacheInspectCmd = &cobra.Command{
	Use:   "inspect <expression>",
	Short: "Show the cached derivation of an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.CacheInspect(cmd.Context(), env, args[0], asJSON, cmd.OutOrStdout())
	},
}

var cacheRmCmd = &cobra.Command{
	Use:   "rm [expression...]",
	Short: "Remove cached derivations",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("specify at least one expression or --all")
		}
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		return cli.CacheRemove(cmd.Context(), env, args, all, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheLsCmd, cacheInspectCmd, cacheRmCmd)

	cacheInspectCmd.Flags().Bool("json", false, "Print JSON instead of YAML")
	cacheRmCmd.Flags().Bool("all", false, "Remove every cached derivation")
}
