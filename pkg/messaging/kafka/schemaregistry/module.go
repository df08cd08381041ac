package schemaregistry

import (
	"context"

	"github.com/Sokol111/schemapub/pkg/core/health"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewSchemaRegistryModule() fx.Option {
	return fx.Provide(provideSchemaRegistryClient)
}

// NewClient builds a registry client from config. A "mock://" URL yields the
// in-memory client.
func NewClient(conf config.SchemaRegistryConfig) (schemaregistry.Client, error) {
	var srConf *schemaregistry.Config
	if conf.Username != "" {
		srConf = schemaregistry.NewConfigWithBasicAuthentication(conf.URL, conf.Username, conf.Password)
	} else {
		srConf = schemaregistry.NewConfig(conf.URL)
	}
	srConf.RequestTimeoutMs = int(conf.RequestTimeout.Milliseconds())
	srConf.CacheCapacity = conf.CacheCapacity

	return schemaregistry.NewClient(srConf)
}

func provideSchemaRegistryClient(lc fx.Lifecycle, kafkaConf config.Config, log *zap.Logger, cm health.ComponentManager) (schemaregistry.Client, error) {
	client, err := NewClient(kafkaConf.SchemaRegistry)
	if err != nil {
		return nil, err
	}

	markReady := cm.AddComponent("schema_registry")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("schema registry client ready", zap.String("url", kafkaConf.SchemaRegistry.URL))
			markReady()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("closing schema registry client")
			return client.Close()
		},
	})

	return client, nil
}
