package producer

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sokol111/schemapub/pkg/core/logger"
	"github.com/Sokol111/schemapub/pkg/messaging"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/serialization"
	"github.com/Sokol111/schemapub/pkg/observability/tracing"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HeaderMessageID carries the ID generated for every published record.
const HeaderMessageID = "message_id"

// Ack is the broker's acknowledgement of an appended record.
type Ack struct {
	Topic     string
	Partition int32
	Offset    int64
	Timestamp time.Time
}

// Result is delivered exactly once on the channel returned by PublishAsync.
type Result struct {
	Ack Ack
	Err error
}

// Publisher serializes records and appends them to Kafka.
type Publisher interface {
	// PublishAsync returns a channel that receives one Result and is then closed.
	// A *serialization.SerializationError means the broker was never contacted.
	PublishAsync(ctx context.Context, record messaging.Record) <-chan Result
	// Publish is the blocking form of PublishAsync.
	Publish(ctx context.Context, record messaging.Record) (Ack, error)
	// Close flushes outstanding messages and releases the producer.
	Close()
}

type publisher struct {
	producer     kafkaProducer
	serializer   serialization.Serializer
	log          *zap.Logger
	throttler    *logger.LogThrottler
	metrics      *publishMetrics
	tracer       trace.Tracer
	flushTimeout time.Duration
	closed       atomic.Bool
	closeOnce    sync.Once
}

func newPublisher(
	producer kafkaProducer,
	serializer serialization.Serializer,
	log *zap.Logger,
	throttler *logger.LogThrottler,
	metrics *publishMetrics,
	flushTimeout time.Duration,
) *publisher {
	return &publisher{
		producer:     producer,
		serializer:   serializer,
		log:          log,
		throttler:    throttler,
		metrics:      metrics,
		tracer:       otel.Tracer("kafka.producer"),
		flushTimeout: flushTimeout,
	}
}

func (p *publisher) PublishAsync(ctx context.Context, record messaging.Record) <-chan Result {
	result := make(chan Result, 1)
	go func() {
		defer close(result)
		ack, err := p.publish(ctx, record)
		result <- Result{Ack: ack, Err: err}
	}()
	return result
}

func (p *publisher) Publish(ctx context.Context, record messaging.Record) (Ack, error) {
	return p.publish(ctx, record)
}

func (p *publisher) publish(ctx context.Context, record messaging.Record) (Ack, error) {
	if p.closed.Load() {
		return Ack{}, &PublishError{Topic: record.Topic, Err: ErrClosed}
	}

	start := time.Now()
	messageID := uuid.NewString()
	ctx, span := p.startProducerSpan(ctx, record.Topic, messageID)
	defer span.End()

	data, err := p.serializer.Serialize(ctx, record)
	if err != nil {
		outcome, status := serializeOutcome(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		p.metrics.record(ctx, record.Topic, outcome, start)
		return Ack{}, err
	}

	delivery := make(chan kafka.Event, 1)
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &record.Topic, Partition: kafka.PartitionAny},
		Key:            record.Key,
		Value:          data,
		Timestamp:      record.Timestamp,
		Headers:        p.buildHeaders(ctx, record.Headers, messageID),
		Opaque:         messageID,
	}, delivery)
	if err != nil {
		return Ack{}, p.sendFailed(ctx, span, record.Topic, messageID, start, newPublishError(record.Topic, err))
	}

	select {
	case ev := <-delivery:
		msg, ok := ev.(*kafka.Message)
		if !ok {
			return Ack{}, p.sendFailed(ctx, span, record.Topic, messageID, start,
				&PublishError{Topic: record.Topic, Err: fmt.Errorf("unexpected delivery event %T", ev)})
		}
		if msg.TopicPartition.Error != nil {
			return Ack{}, p.sendFailed(ctx, span, record.Topic, messageID, start,
				newPublishError(record.Topic, msg.TopicPartition.Error))
		}

		ack := Ack{
			Topic:     record.Topic,
			Partition: msg.TopicPartition.Partition,
			Offset:    int64(msg.TopicPartition.Offset),
			Timestamp: msg.Timestamp,
		}
		span.SetAttributes(
			attribute.Int("messaging.kafka.destination.partition", int(ack.Partition)),
			attribute.Int64("messaging.kafka.message.offset", ack.Offset),
		)
		p.metrics.record(ctx, record.Topic, outcomeAcked, start)
		p.log.Debug("record acknowledged",
			zap.String("topic", ack.Topic),
			zap.Int32("partition", ack.Partition),
			zap.Int64("offset", ack.Offset),
			zap.String("message_id", messageID))
		return ack, nil

	case <-ctx.Done():
		// The broker may still append the record.
		return Ack{}, p.sendFailed(ctx, span, record.Topic, messageID, start,
			&PublishError{Topic: record.Topic, Retryable: true, Err: ctx.Err()})
	}
}

// serializeOutcome classifies a Serialize failure for metrics and span status.
func serializeOutcome(err error) (outcome, status string) {
	switch {
	case serialization.IsIncompatible(err):
		return outcomeRejected, "schema rejected"
	case serialization.IsRegistryUnavailable(err):
		return outcomeRegistryDown, "schema registry unavailable"
	default:
		return outcomeSerializeFailed, "serialization failed"
	}
}

func (p *publisher) sendFailed(ctx context.Context, span trace.Span, topic, messageID string, start time.Time, err *PublishError) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "send failed")
	p.metrics.record(context.WithoutCancel(ctx), topic, outcomeFailed, start)
	fields := append([]zap.Field{
		zap.String("topic", topic),
		zap.String("message_id", messageID),
		zap.Bool("retryable", err.Retryable),
		zap.Error(err.Err),
	}, tracing.LogFields(ctx)...)
	p.throttler.Warn("delivery-failed:"+topic, "kafka delivery failed", fields...)
	return err
}

func (p *publisher) startProducerSpan(ctx context.Context, topic, messageID string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "kafka.produce",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.message.id", messageID),
		),
	)
}

// buildHeaders merges caller headers with the message ID and the current
// trace context. Keys are sorted so equal inputs produce equal messages.
func (p *publisher) buildHeaders(ctx context.Context, headers map[string]string, messageID string) []kafka.Header {
	merged := lo.Assign(headers, map[string]string{HeaderMessageID: messageID})
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(merged))

	result := lo.MapToSlice(merged, func(key, value string) kafka.Header {
		return kafka.Header{Key: key, Value: []byte(value)}
	})
	slices.SortFunc(result, func(a, b kafka.Header) int {
		return strings.Compare(a.Key, b.Key)
	})
	return result
}

func (p *publisher) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		remaining := p.producer.Flush(int(p.flushTimeout.Milliseconds()))
		if remaining > 0 {
			p.log.Warn("producer closed with undelivered messages", zap.Int("remaining", remaining))
		}
		p.producer.Close()
		p.log.Info("producer closed")
	})
}
