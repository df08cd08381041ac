package main

import (
	"github.com/Sokol111/schemapub/internal/codegen"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cfg := codegen.Config{}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go types with AvroSchema methods from record schemas",
		Long: `Generate Go types with AvroSchema methods from record schemas.

Every record, nested ones included, becomes a struct with avro tags and an
AvroSchema method, so values can be published without binding their type first.

Example:
  schemapub generate --schema order_created.avsc --schema order_paid.avsc --output events/events.gen.go --package events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				cfg.Log = cmd.OutOrStdout()
			}
			gen, err := codegen.New(cfg)
			if err != nil {
				return err
			}
			return gen.Generate()
		},
	}

	cmd.Flags().StringSliceVarP(&cfg.SchemaFiles, "schema", "s", nil, "Record schema file, *.avsc (repeatable, required)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "Output Go file (required)")
	cmd.Flags().StringVarP(&cfg.Package, "package", "n", codegen.DefaultPackage, "Package name of the generated file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every parsed schema and the written file")

	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
