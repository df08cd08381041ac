package producer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Sokol111/schemapub/pkg/core/logger"
	"github.com/Sokol111/schemapub/pkg/messaging"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// mockKafkaProducer is a mock implementation of kafkaProducer interface for testing.
type mockKafkaProducer struct {
	mu          sync.Mutex
	produceFunc func(msg *kafka.Message, deliveryChan chan kafka.Event) error
	produced    []*kafka.Message
	flushCalls  int
	closeCalls  int
	remaining   int
	events      chan kafka.Event
}

func (m *mockKafkaProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	m.mu.Lock()
	m.produced = append(m.produced, msg)
	m.mu.Unlock()

	if m.produceFunc != nil {
		return m.produceFunc(msg, deliveryChan)
	}
	return nil
}

func (m *mockKafkaProducer) Events() chan kafka.Event {
	return m.events
}

func (m *mockKafkaProducer) Flush(int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCalls++
	return m.remaining
}

func (m *mockKafkaProducer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
}

func (m *mockKafkaProducer) producedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.produced)
}

// ackWith answers every Produce with a successful delivery report.
func ackWith(partition int32, offset kafka.Offset) func(*kafka.Message, chan kafka.Event) error {
	return func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
		reply := *msg
		reply.TopicPartition.Partition = partition
		reply.TopicPartition.Offset = offset
		reply.Timestamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		deliveryChan <- &reply
		return nil
	}
}

// mockSerializer is a mock implementation of serialization.Serializer.
type mockSerializer struct {
	serializeFunc func(ctx context.Context, record messaging.Record) ([]byte, error)
}

func (m *mockSerializer) Serialize(ctx context.Context, record messaging.Record) ([]byte, error) {
	if m.serializeFunc != nil {
		return m.serializeFunc(ctx, record)
	}
	return []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x02}, nil
}

func newTestPublisher(t *testing.T, kp kafkaProducer, s *mockSerializer) *publisher {
	t.Helper()
	metrics, err := newPublishMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	if s == nil {
		s = &mockSerializer{}
	}
	log := zap.NewNop()
	return newPublisher(kp, s, log, logger.NewLogThrottler(log, time.Minute), metrics, time.Second)
}
