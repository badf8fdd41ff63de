package main

import (
	"github.com/aretw0/conform/internal/cli"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <collection>",
	Short: "Show the declared fields of a collection",
	Long: `Prints the sample and frame schemas as Markdown tables, or as a Mermaid
flowchart with --mermaid. Passing --fields and --allowed highlights the
fields that fail the type check on the diagram.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		mermaid, _ := cmd.Flags().GetBool("mermaid")
		var check *cli.FieldOptions
		if cmd.Flags().Changed("fields") {
			opts := fieldOptions(cmd, args[0])
			check = &opts
		}
		return cli.ShowSchema(cmd.Context(), e.svc, reporter(cmd), args[0], mermaid, check)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart")
	schemaCmd.Flags().StringSlice("fields", nil, "Field names to check for the overlay")
	schemaCmd.Flags().StringSlice("allowed", nil, "Allowed field types for the overlay")
	schemaCmd.Flags().Bool("same-type", false, "Require every field to share one type")
}
