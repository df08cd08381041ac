package producer

import (
	"fmt"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// kafkaProducer is the part of *kafka.Producer the publisher uses.
type kafkaProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Events() chan kafka.Event
	Flush(timeoutMs int) int
	Close()
}

// NewKafkaProducer creates a librdkafka producer from conf.
func NewKafkaProducer(conf config.Config) (*kafka.Producer, error) {
	p, err := kafka.NewProducer(buildConfigMap(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return p, nil
}

func buildConfigMap(conf config.Config) *kafka.ConfigMap {
	pc := conf.ProducerConfig
	cm := &kafka.ConfigMap{
		"bootstrap.servers":  conf.Brokers,
		"client.id":          conf.ClientID,
		"acks":               pc.Acks,
		"enable.idempotence": pc.EnableIdempotence,
		"linger.ms":          int(pc.Linger.Milliseconds()),
		"compression.type":   pc.Compression,
	}
	if pc.DeliveryTimeout > 0 {
		_ = cm.SetKey("message.timeout.ms", int(pc.DeliveryTimeout.Milliseconds()))
	}
	return cm
}
