package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Sokol111/schemapub/internal/avsc"
	"github.com/Sokol111/schemapub/pkg/messaging"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/producer"
	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

type publishOptions struct {
	topic      string
	schemaFile string
	value      string
	key        string
	name       string
	headers    map[string]string
	retries    uint64
}

func newPublishCmd(global *globalOptions) *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish one JSON value as an Avro record",
		Long: `Publish one JSON value as an Avro record.

The value is checked against the record schema in --schema, the schema is
registered under the subject chosen by the subject strategy, and the record is
sent in the Confluent wire format. A schema the registry rejects is printed
verbatim and nothing is sent.

Example:
  schemapub publish --topic test --schema value1.avsc --value '{"value":"value1"}'
  schemapub publish --topic test --schema new_value1.avsc --name value_1 --value @value.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd.Context(), global, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "Destination topic (required)")
	cmd.Flags().StringVarP(&opts.schemaFile, "schema", "s", "", "Record schema file, *.avsc (required)")
	cmd.Flags().StringVarP(&opts.value, "value", "v", "", "JSON value, @file to read a file or - for stdin (required)")
	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "Record key")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Logical record name overriding the schema's own")
	cmd.Flags().StringToStringVarP(&opts.headers, "header", "H", nil, "Record header as key=value, repeatable")
	cmd.Flags().Uint64Var(&opts.retries, "retries", 0, "Retries for retryable failures")

	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runPublish(ctx context.Context, global *globalOptions, opts *publishOptions, out io.Writer) error {
	rec, err := avsc.LoadFile(opts.schemaFile)
	if err != nil {
		return err
	}
	if opts.name != "" {
		rec = rec.WithName(avsc.LogicalName(opts.name))
	}

	raw, err := readValue(opts.value)
	if err != nil {
		return err
	}
	value, err := avsc.Decode(rec, raw)
	if err != nil {
		return err
	}

	record := messaging.Record{
		Topic:   opts.topic,
		Value:   value,
		Headers: opts.headers,
	}
	if opts.key != "" {
		record.Key = []byte(opts.key)
	}

	var pub producer.Publisher
	return global.run(ctx, global.messagingModule, []any{&pub}, func(ctx context.Context) error {
		b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(200*time.Millisecond),
		), opts.retries)

		ack, err := producer.PublishWithRetry(ctx, pub, record, b)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s [%d] @ %d\n", ack.Topic, ack.Partition, ack.Offset)
		return err
	})
}

func readValue(value string) ([]byte, error) {
	switch {
	case value == "-":
		return io.ReadAll(os.Stdin)
	case len(value) > 1 && value[0] == '@':
		data, err := os.ReadFile(value[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read value file: %w", err)
		}
		return data, nil
	default:
		return []byte(value), nil
	}
}
