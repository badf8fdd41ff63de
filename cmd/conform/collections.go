package main

import (
	"github.com/aretw0/conform/internal/cli"
	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List loaded collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if registered, _ := cmd.Flags().GetBool("registered"); registered {
			return cli.ListRegistered(cmd.Context(), e.svc, reporter(cmd))
		}
		return cli.ListCollections(cmd.Context(), e.svc, reporter(cmd))
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	collectionsCmd.Flags().Bool("registered", false, "List schemas held by the registry (all processes sharing a Redis backend)")
}
