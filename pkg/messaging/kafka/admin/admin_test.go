package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminAPI is a mock implementation of adminAPI interface for testing.
type mockAdminAPI struct {
	createFunc   func(topics []kafka.TopicSpecification) ([]kafka.TopicResult, error)
	deleteFunc   func(topics []string) ([]kafka.TopicResult, error)
	metadataFunc func(allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	created      []kafka.TopicSpecification
	closed       bool
}

func (m *mockAdminAPI) CreateTopics(_ context.Context, topics []kafka.TopicSpecification, _ ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error) {
	m.created = append(m.created, topics...)
	if m.createFunc != nil {
		return m.createFunc(topics)
	}
	return []kafka.TopicResult{{Topic: topics[0].Topic}}, nil
}

func (m *mockAdminAPI) DeleteTopics(_ context.Context, topics []string, _ ...kafka.DeleteTopicsAdminOption) ([]kafka.TopicResult, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(topics)
	}
	return []kafka.TopicResult{{Topic: topics[0]}}, nil
}

func (m *mockAdminAPI) GetMetadata(_ *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error) {
	if m.metadataFunc != nil {
		return m.metadataFunc(allTopics, timeoutMs)
	}
	return &kafka.Metadata{}, nil
}

func (m *mockAdminAPI) Close() {
	m.closed = true
}

var testAdminConfig = config.AdminConfig{
	OperationTimeout:         30 * time.Second,
	DefaultPartitions:        3,
	DefaultReplicationFactor: 1,
}

func TestAdmin_CreateTopic(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		mock := &mockAdminAPI{}
		a := newAdmin(mock, testAdminConfig, zap.NewNop())

		err := a.CreateTopic(context.Background(), TopicSpec{Name: "test"})

		require.NoError(t, err)
		require.Len(t, mock.created, 1)
		assert.Equal(t, 3, mock.created[0].NumPartitions)
		assert.Equal(t, 1, mock.created[0].ReplicationFactor)
	})

	t.Run("uses explicit values", func(t *testing.T) {
		mock := &mockAdminAPI{}
		a := newAdmin(mock, testAdminConfig, zap.NewNop())

		err := a.CreateTopic(context.Background(), TopicSpec{
			Name:              "test",
			Partitions:        1,
			ReplicationFactor: 3,
			Config:            map[string]string{"cleanup.policy": "compact"},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, mock.created[0].NumPartitions)
		assert.Equal(t, 3, mock.created[0].ReplicationFactor)
		assert.Equal(t, "compact", mock.created[0].Config["cleanup.policy"])
	})

	t.Run("rejects empty name", func(t *testing.T) {
		mock := &mockAdminAPI{}
		a := newAdmin(mock, testAdminConfig, zap.NewNop())

		err := a.CreateTopic(context.Background(), TopicSpec{})

		assert.Error(t, err)
		assert.Empty(t, mock.created)
	})
}

func TestAdmin_CreateTopic_AlreadyExists(t *testing.T) {
	exists := func(topics []kafka.TopicSpecification) ([]kafka.TopicResult, error) {
		return []kafka.TopicResult{{
			Topic: topics[0].Topic,
			Error: kafka.NewError(kafka.ErrTopicAlreadyExists, "Topic 'test' already exists.", false),
		}}, nil
	}

	tests := []struct {
		name           string
		ignoreExisting bool
		wantErr        bool
	}{
		{name: "error by default", wantErr: true},
		{name: "ignored when requested", ignoreExisting: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdmin(&mockAdminAPI{createFunc: exists}, testAdminConfig, zap.NewNop())

			err := a.CreateTopic(context.Background(), TopicSpec{Name: "test", IgnoreExisting: tt.ignoreExisting})

			if tt.wantErr {
				var kafkaErr kafka.Error
				require.ErrorAs(t, err, &kafkaErr)
				assert.Equal(t, kafka.ErrTopicAlreadyExists, kafkaErr.Code())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAdmin_CreateTopic_RequestFails(t *testing.T) {
	a := newAdmin(&mockAdminAPI{createFunc: func([]kafka.TopicSpecification) ([]kafka.TopicResult, error) {
		return nil, errors.New("transport failure")
	}}, testAdminConfig, zap.NewNop())

	err := a.CreateTopic(context.Background(), TopicSpec{Name: "test"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create topic test")
}

func TestAdmin_DeleteTopic(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := newAdmin(&mockAdminAPI{}, testAdminConfig, zap.NewNop())

		assert.NoError(t, a.DeleteTopic(context.Background(), "test"))
	})

	t.Run("unknown topic", func(t *testing.T) {
		a := newAdmin(&mockAdminAPI{deleteFunc: func(topics []string) ([]kafka.TopicResult, error) {
			return []kafka.TopicResult{{
				Topic: topics[0],
				Error: kafka.NewError(kafka.ErrUnknownTopicOrPart, "Broker: Unknown topic or partition", false),
			}}, nil
		}}, testAdminConfig, zap.NewNop())

		err := a.DeleteTopic(context.Background(), "test")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete topic test")
	})
}

func TestAdmin_TopicExists(t *testing.T) {
	// Arrange
	var gotAllTopics bool
	mock := &mockAdminAPI{metadataFunc: func(allTopics bool, _ int) (*kafka.Metadata, error) {
		gotAllTopics = allTopics
		return &kafka.Metadata{Topics: map[string]kafka.TopicMetadata{
			"test":   {Topic: "test"},
			"broken": {Topic: "broken", Error: kafka.NewError(kafka.ErrUnknownTopicOrPart, "unknown", false)},
		}}, nil
	}}
	a := newAdmin(mock, testAdminConfig, zap.NewNop())

	// Act
	existing, err1 := a.TopicExists(context.Background(), "test")
	broken, err2 := a.TopicExists(context.Background(), "broken")
	missing, err3 := a.TopicExists(context.Background(), "missing")

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NoError(t, err3)
	assert.True(t, existing)
	assert.False(t, broken)
	assert.False(t, missing)
	assert.True(t, gotAllTopics)
}

func TestAdmin_TopicExists_UsesContextDeadline(t *testing.T) {
	var gotTimeout int
	a := newAdmin(&mockAdminAPI{metadataFunc: func(_ bool, timeoutMs int) (*kafka.Metadata, error) {
		gotTimeout = timeoutMs
		return &kafka.Metadata{}, nil
	}}, testAdminConfig, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := a.TopicExists(ctx, "test")

	require.NoError(t, err)
	assert.LessOrEqual(t, gotTimeout, 2000)
	assert.Positive(t, gotTimeout)
}

func TestAdmin_Close(t *testing.T) {
	mock := &mockAdminAPI{}
	a := newAdmin(mock, testAdminConfig, zap.NewNop())

	a.Close()

	assert.True(t, mock.closed)
}
