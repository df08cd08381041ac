package producer

import (
	"context"

	"github.com/Sokol111/schemapub/pkg/core/health"
	"github.com/Sokol111/schemapub/pkg/core/logger"
	"github.com/Sokol111/schemapub/pkg/core/worker"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/serialization"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewProducerModule() fx.Option {
	return fx.Options(
		fx.Provide(
			provideKafkaProducer,
			providePublisher,
			provideEventsMonitor,
		),
		fx.Invoke(worker.Register[*EventsMonitor]("kafka-producer-events")),
	)
}

func provideKafkaProducer(lc fx.Lifecycle, log *zap.Logger, conf config.Config, readiness health.ComponentManager) (*kafka.Producer, error) {
	p, err := NewKafkaProducer(conf)
	if err != nil {
		return nil, err
	}

	log = log.With(zap.String("component", "producer"))
	markReady := readiness.AddComponent("kafka-producer")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pc := conf.ProducerConfig
			if err := waitForBrokers(ctx, p, log, pc.ReadinessTimeoutSeconds, pc.FailOnBrokerError); err != nil {
				return err
			}
			markReady()
			return nil
		},
	})

	return p, nil
}

// NewPublisher wraps p. Close on the returned Publisher also closes p.
func NewPublisher(p *kafka.Producer, serializer serialization.Serializer, conf config.Config, log *zap.Logger) (Publisher, error) {
	metrics, err := newPublishMetrics(otel.Meter("kafka.producer"))
	if err != nil {
		return nil, err
	}

	log = log.With(zap.String("component", "producer"))
	return newPublisher(p, serializer, log,
		logger.NewLogThrottler(log, conf.ProducerConfig.FailureLogInterval),
		metrics,
		conf.ProducerConfig.DeliveryTimeout,
	), nil
}

func providePublisher(lc fx.Lifecycle, p *kafka.Producer, serializer serialization.Serializer, conf config.Config, log *zap.Logger) (Publisher, error) {
	pub, err := NewPublisher(p, serializer, conf, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pub.Close()
			return nil
		},
	})

	return pub, nil
}

func provideEventsMonitor(p *kafka.Producer, conf config.Config, log *zap.Logger) *EventsMonitor {
	log = log.With(zap.String("component", "producer-events"))
	return newEventsMonitor(p.Events(), log, logger.NewLogThrottler(log, conf.ProducerConfig.FailureLogInterval))
}
