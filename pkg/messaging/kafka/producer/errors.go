package producer

import (
	"errors"
	"fmt"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/serialization"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// ErrClosed is returned by publishes issued after Close.
var ErrClosed = errors.New("publisher is closed")

// PublishError reports a record that was serialized but not acknowledged by
// the broker. Retryable failures may be sent again; a retry after a timeout
// can duplicate the record.
type PublishError struct {
	Topic     string
	Retryable bool
	Err       error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish to topic %s: %v", e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether sending the same record again may succeed.
func IsRetryable(err error) bool {
	var publishErr *PublishError
	if errors.As(err, &publishErr) {
		return publishErr.Retryable
	}
	return serialization.IsRegistryUnavailable(err)
}

func newPublishError(topic string, err error) *PublishError {
	return &PublishError{Topic: topic, Retryable: isRetriableKafkaError(err), Err: err}
}

func isRetriableKafkaError(err error) bool {
	var kafkaErr kafka.Error
	if !errors.As(err, &kafkaErr) {
		return false
	}
	if kafkaErr.IsFatal() {
		return false
	}
	switch kafkaErr.Code() {
	case kafka.ErrQueueFull, kafka.ErrMsgTimedOut, kafka.ErrTimedOut, kafka.ErrTransport, kafka.ErrAllBrokersDown:
		return true
	}
	return kafkaErr.IsRetriable() || kafkaErr.IsTimeout()
}
