package producer

import (
	"context"
	"testing"
	"time"

	"github.com/Sokol111/schemapub/pkg/core/logger"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventsMonitor_Run(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	events := make(chan kafka.Event, 4)
	monitor := newEventsMonitor(events, log, logger.NewLogThrottler(log, time.Hour))
	topic := "test"

	events <- kafka.NewError(kafka.ErrAllBrokersDown, "all brokers down", false)
	events <- kafka.NewError(kafka.ErrAllBrokersDown, "all brokers down", false)
	events <- &kafka.Message{TopicPartition: kafka.TopicPartition{
		Topic: &topic,
		Error: kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false),
	}}
	close(events)

	// Act
	err := monitor.Run(context.Background())

	// Assert
	require.NoError(t, err)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "producer client error", warnings[0].Message)
	assert.Equal(t, "kafka delivery failed", warnings[1].Message)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).FilterMessage("producer client error").Len())
}

func TestEventsMonitor_FatalError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	monitor := newEventsMonitor(nil, log, logger.NewLogThrottler(log, time.Hour))

	monitor.handle(kafka.NewError(kafka.ErrFatal, "fenced", true))

	assert.Equal(t, 1, logs.FilterMessage("fatal producer error").Len())
}

func TestEventsMonitor_StopsOnCancel(t *testing.T) {
	monitor := newEventsMonitor(make(chan kafka.Event), zap.NewNop(), logger.NewLogThrottler(zap.NewNop(), 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, monitor.Run(ctx))
}
