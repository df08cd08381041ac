package modules

import (
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/admin"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/producer"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/schemaregistry"
	"go.uber.org/fx"
)

// messagingOptions holds internal configuration for the messaging module.
type messagingOptions struct {
	kafkaConfig  *config.Config
	disableAdmin bool
}

// MessagingOption is a functional option for configuring the messaging module.
type MessagingOption func(*messagingOptions)

// WithKafkaConfig provides a static Kafka Config (useful for tests).
// When set, the Kafka configuration will not be loaded from viper.
func WithKafkaConfig(cfg config.Config) MessagingOption {
	return func(opts *messagingOptions) {
		opts.kafkaConfig = &cfg
	}
}

// WithoutAdmin skips the topic admin client.
func WithoutAdmin() MessagingOption {
	return func(opts *messagingOptions) {
		opts.disableAdmin = true
	}
}

// NewMessagingModule provides the schema-aware publishing stack: kafka config,
// schema registry client, avro serialization, producer and topic admin.
//
// Example usage:
//
//	// Production - loads config from viper
//	modules.NewMessagingModule()
//
//	// Testing - with static config
//	modules.NewMessagingModule(
//	    modules.WithKafkaConfig(config.Config{...}),
//	)
func NewMessagingModule(opts ...MessagingOption) fx.Option {
	cfg := &messagingOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		kafkaConfigModule(cfg),
		schemaregistry.NewSchemaRegistryModule(),
		avro.NewAvroModule(),
		producer.NewProducerModule(),
		adminModule(cfg),
	)
}

func kafkaConfigModule(cfg *messagingOptions) fx.Option {
	if cfg.kafkaConfig != nil {
		return config.NewKafkaConfigModule(config.WithKafkaConfig(*cfg.kafkaConfig))
	}
	return config.NewKafkaConfigModule()
}

func adminModule(cfg *messagingOptions) fx.Option {
	if cfg.disableAdmin {
		return fx.Options()
	}
	return admin.NewAdminModule()
}
