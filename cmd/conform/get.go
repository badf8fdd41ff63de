package main

import (
	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <collection> <sample>",
	Short: "Read field values of a sample, optionally type-checked",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		fields, _ := cmd.Flags().GetStringSlice("fields")
		allowed, _ := cmd.Flags().GetStringSlice("allowed")
		sameType, _ := cmd.Flags().GetBool("same-type")
		disallowNone, _ := cmd.Flags().GetBool("disallow-none")

		return cli.GetFields(cmd.Context(), e.svc, reporter(cmd), domain.FieldQuery{
			Collection:   args[0],
			SampleID:     args[1],
			Fields:       fields,
			Allowed:      allowed,
			SameType:     sameType,
			DisallowNone: disallowNone,
		})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringSlice("fields", nil, "Field names to read")
	getCmd.Flags().StringSlice("allowed", nil, "Allowed value types")
	getCmd.Flags().Bool("same-type", false, "Require every value to share one type")
	getCmd.Flags().Bool("disallow-none", false, "Reject null values")
	_ = getCmd.MarkFlagRequired("fields")
}
