package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Sokol111/schemapub/internal/avsc"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/serialization"
	"github.com/spf13/cobra"
)

type schemaShowOptions struct {
	schemaFile string
	name       string
	topic      string
	strategy   string
}

func newSchemaCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect schemas locally or in the registry",
	}
	cmd.AddCommand(newSchemaShowCmd(), newSchemaGetCmd(global))
	return cmd
}

func newSchemaShowCmd() *cobra.Command {
	opts := &schemaShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the canonical schema and the subject it would be registered under",
		Long: `Print the canonical schema and the subject it would be registered under.

Nothing is sent to the registry; use it to check what publish will register.

Example:
  schemapub schema show --schema new_value1.avsc --name value_1 --topic test`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemaShow(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.schemaFile, "schema", "s", "", "Record schema file, *.avsc (required)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Logical record name overriding the schema's own")
	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "Topic used to compute the subject")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "topic-record", "Subject naming: topic | record | topic-record")

	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runSchemaShow(opts *schemaShowOptions, out io.Writer) error {
	rec, err := avsc.LoadFile(opts.schemaFile)
	if err != nil {
		return err
	}
	if opts.name != "" {
		rec = rec.WithName(avsc.LogicalName(opts.name))
	}

	canonical, err := rec.Canonical()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, canonical); err != nil {
		return err
	}

	if opts.topic == "" {
		return nil
	}
	strategy, err := serialization.SubjectNameStrategyFor(opts.strategy)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "subject: %s\n", strategy(opts.topic, rec))
	return err
}

func newSchemaGetCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Fetch a registered schema by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return fmt.Errorf("invalid schema id %q", args[0])
			}

			var registry *serialization.RegistryClient
			return global.run(cmd.Context(), global.registryModule, []any{&registry}, func(ctx context.Context) error {
				s, err := registry.SchemaByID(ctx, id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			})
		},
	}
}
