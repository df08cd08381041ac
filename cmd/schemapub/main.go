// Package main provides the schemapub CLI for publishing Avro records through
// a schema registry and managing the topics they go to.
//
// Usage:
//
//	schemapub topic create test --partitions 1 --replication-factor 1
//	schemapub publish --topic test --schema value1.avsc --value '{"value":"value1"}'
//	schemapub schema show --schema value1.avsc --name value_1 --topic test
//	schemapub schema get 42
//	schemapub generate --schema order_created.avsc --output events/events.gen.go
//
// Connection settings come from the kafka section of the config file, or from
// --brokers and --registry, which take precedence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "schemapub",
		Short:         "Publish schema-checked Avro records to Kafka",
		Long:          `schemapub serializes records in the Confluent wire format, registering their schemas under the configured compatibility mode, and publishes them to Kafka.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to the YAML config file")
	flags.StringVar(&opts.brokers, "brokers", "", "Comma-separated Kafka brokers (overrides config)")
	flags.StringVar(&opts.registryURL, "registry", "", "Schema Registry URL (overrides config)")
	flags.StringVar(&opts.compatibility, "compatibility", "", "Compatibility mode applied to new subjects, e.g. BACKWARD")
	flags.StringVar(&opts.subjectStrategy, "subject-strategy", "", "Subject naming: topic | record | topic-record")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Overall timeout for the command")

	rootCmd.AddCommand(
		newPublishCmd(opts),
		newTopicCmd(opts),
		newSchemaCmd(opts),
		newGenerateCmd(),
	)

	return rootCmd
}
