package producer

import (
	"testing"
	"time"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigMap(t *testing.T) {
	// Arrange
	conf := config.Config{
		Brokers:  "localhost:9092",
		ClientID: "schemapub",
		ProducerConfig: config.ProducerConfig{
			DeliveryTimeout:   30 * time.Second,
			Acks:              "all",
			EnableIdempotence: true,
			Linger:            5 * time.Millisecond,
			Compression:       "lz4",
		},
	}

	// Act
	cm := buildConfigMap(conf)

	// Assert
	expected := map[string]any{
		"bootstrap.servers":  "localhost:9092",
		"client.id":          "schemapub",
		"acks":               "all",
		"enable.idempotence": true,
		"linger.ms":          5,
		"compression.type":   "lz4",
		"message.timeout.ms": 30000,
	}
	for key, want := range expected {
		got, err := cm.Get(key, nil)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestBuildConfigMap_NoDeliveryTimeout(t *testing.T) {
	cm := buildConfigMap(config.Config{Brokers: "b:9092"})

	got, err := cm.Get("message.timeout.ms", "unset")

	require.NoError(t, err)
	assert.Equal(t, "unset", got)
}
