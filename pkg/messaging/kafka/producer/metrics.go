package producer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeAcked           = "acked"
	outcomeRejected        = "schema_rejected"
	outcomeRegistryDown    = "registry_unavailable"
	outcomeSerializeFailed = "serialize_failed"
	outcomeFailed          = "send_failed"
)

type publishMetrics struct {
	messages metric.Int64Counter
	duration metric.Float64Histogram
}

func newPublishMetrics(meter metric.Meter) (*publishMetrics, error) {
	messages, err := meter.Int64Counter("messaging.publish.messages",
		metric.WithDescription("Records passed to the publisher, by outcome"),
		metric.WithUnit("{message}"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("messaging.publish.duration",
		metric.WithDescription("Time from publish call to acknowledgement or failure"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &publishMetrics{messages: messages, duration: duration}, nil
}

func (m *publishMetrics) record(ctx context.Context, topic, outcome string, start time.Time) {
	attrs := metric.WithAttributes(
		attribute.String("messaging.destination.name", topic),
		attribute.String("outcome", outcome),
	)
	m.messages.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}
