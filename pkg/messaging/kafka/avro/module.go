package avro

import (
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/deserialization"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/encoding"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/mapping"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/serialization"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewAvroModule provides the codec, registry client, serializer and
// deserializer. Types without a Describer implementation are bound on the
// provided *mapping.TypeMapping, typically from an fx.Invoke.
func NewAvroModule() fx.Option {
	return fx.Module("avro",
		fx.Provide(
			mapping.NewTypeMapping,
			encoding.NewCodec,
			provideWireFormat,
			provideRegistryClient,
			provideSerializer,
			provideDeserializer,
		),
	)
}

func provideWireFormat() (encoding.WireFormatParser, encoding.WireFormatBuilder) {
	return encoding.NewConfluentWireFormat()
}

func provideRegistryClient(client schemaregistry.Client, kafkaConf config.Config, log *zap.Logger) (*serialization.RegistryClient, error) {
	sr := kafkaConf.SchemaRegistry
	return serialization.NewRegistryClient(client, serialization.RegistryOptions{
		CacheCapacity: sr.CacheCapacity,
		Compatibility: sr.Compatibility,
		Normalize:     sr.Normalize,
	}, log)
}

func provideSerializer(
	codec *encoding.Codec,
	registry *serialization.RegistryClient,
	builder encoding.WireFormatBuilder,
	kafkaConf config.Config,
) (serialization.Serializer, error) {
	strategy, err := serialization.SubjectNameStrategyFor(kafkaConf.SchemaRegistry.SubjectNameStrategy)
	if err != nil {
		return nil, err
	}
	return serialization.NewSerializer(codec, registry, strategy, builder), nil
}

func provideDeserializer(
	parser encoding.WireFormatParser,
	registry *serialization.RegistryClient,
	codec *encoding.Codec,
) deserialization.Deserializer {
	return deserialization.NewDeserializer(parser, registry, codec)
}
