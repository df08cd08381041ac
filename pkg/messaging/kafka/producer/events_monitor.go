package producer

import (
	"context"

	"github.com/Sokol111/schemapub/pkg/core/logger"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// EventsMonitor drains producer events that are not delivery reports:
// client-level errors and the reports of messages produced without a
// delivery channel.
type EventsMonitor struct {
	events    chan kafka.Event
	log       *zap.Logger
	throttler *logger.LogThrottler
}

func newEventsMonitor(events chan kafka.Event, log *zap.Logger, throttler *logger.LogThrottler) *EventsMonitor {
	return &EventsMonitor{events: events, log: log, throttler: throttler}
}

func (m *EventsMonitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-m.events:
			if !ok {
				return nil
			}
			m.handle(ev)
		}
	}
}

func (m *EventsMonitor) handle(ev kafka.Event) {
	switch e := ev.(type) {
	case kafka.Error:
		if e.IsFatal() {
			m.log.Error("fatal producer error", zap.Error(e), zap.String("code", e.Code().String()))
			return
		}
		m.throttler.Warn("client-error:"+e.Code().String(), "producer client error",
			zap.Error(e), zap.String("code", e.Code().String()))
	case *kafka.Message:
		if e.TopicPartition.Error != nil {
			m.throttler.Warn("delivery-failed:"+topicOf(e), "kafka delivery failed",
				zap.String("topic", topicOf(e)), zap.Error(e.TopicPartition.Error))
		}
	default:
		m.log.Debug("ignored producer event", zap.String("event", ev.String()))
	}
}

func topicOf(msg *kafka.Message) string {
	if msg.TopicPartition.Topic == nil {
		return ""
	}
	return *msg.TopicPartition.Topic
}
