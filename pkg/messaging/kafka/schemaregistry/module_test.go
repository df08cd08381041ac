package schemaregistry

import (
	"testing"
	"time"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Mock(t *testing.T) {
	client, err := NewClient(config.SchemaRegistryConfig{
		URL:            "mock://test",
		CacheCapacity:  100,
		RequestTimeout: time.Second,
	})

	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NoError(t, client.Close())
}

func TestNewClient_BasicAuth(t *testing.T) {
	client, err := NewClient(config.SchemaRegistryConfig{
		URL:            "http://localhost:8081",
		Username:       "user",
		Password:       "secret",
		RequestTimeout: time.Second,
	})

	require.NoError(t, err)
	assert.NotNil(t, client)
}
