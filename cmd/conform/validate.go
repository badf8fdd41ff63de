package main

import (
	"github.com/aretw0/conform/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run media or label field checks",
}

var validateMediaCmd = &cobra.Command{
	Use:   "media [collection...]",
	Short: "Check that collections or a sample have the expected media type",
	Long: `Checks every named collection, or all collections when none are named.
Without --expect, only checks that each target is a sample collection.
With --sample, checks one sample of exactly one collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		expect, _ := cmd.Flags().GetString("expect")
		sample, _ := cmd.Flags().GetString("sample")
		return cli.ValidateMedia(cmd.Context(), e.svc, reporter(cmd), cli.MediaOptions{
			Collections: args,
			SampleID:    sample,
			MediaType:   expect,
		})
	},
}

var validateFieldsCmd = &cobra.Command{
	Use:   "fields <collection>",
	Short: "Check that label fields exist and have allowed types",
	Long: `Checks declared field types of a collection. On video collections,
field names prefixed with "frames." are checked against the frame schema.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return cli.ValidateFields(cmd.Context(), e.svc, reporter(cmd), fieldOptions(cmd, args[0]))
	},
}

func fieldOptions(cmd *cobra.Command, collection string) cli.FieldOptions {
	fields, _ := cmd.Flags().GetStringSlice("fields")
	allowed, _ := cmd.Flags().GetStringSlice("allowed")
	sameType, _ := cmd.Flags().GetBool("same-type")
	return cli.FieldOptions{
		Collection: collection,
		Fields:     fields,
		Allowed:    allowed,
		SameType:   sameType,
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.AddCommand(validateMediaCmd, validateFieldsCmd)

	validateMediaCmd.Flags().String("expect", "", "Expected media type: image or video")
	validateMediaCmd.Flags().String("sample", "", "Check one sample instead of whole collections")

	validateFieldsCmd.Flags().StringSlice("fields", nil, "Field names to check")
	validateFieldsCmd.Flags().StringSlice("allowed", nil, "Allowed field types")
	validateFieldsCmd.Flags().Bool("same-type", false, "Require every field to share one type")
}
