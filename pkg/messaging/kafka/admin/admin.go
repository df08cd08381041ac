package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// TopicSpec describes a topic to create. Zero partitions or replication
// factor fall back to the configured defaults.
type TopicSpec struct {
	Name              string
	Partitions        int
	ReplicationFactor int
	Config            map[string]string
	IgnoreExisting    bool
}

// adminAPI is the part of *kafka.AdminClient used here.
type adminAPI interface {
	CreateTopics(ctx context.Context, topics []kafka.TopicSpecification, options ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error)
	DeleteTopics(ctx context.Context, topics []string, options ...kafka.DeleteTopicsAdminOption) ([]kafka.TopicResult, error)
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	Close()
}

// Admin creates, deletes and inspects topics.
type Admin struct {
	api  adminAPI
	conf config.AdminConfig
	log  *zap.Logger
}

// New connects a standalone admin client.
func New(conf config.Config, log *zap.Logger) (*Admin, error) {
	client, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": conf.Brokers,
		"client.id":         conf.ClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}
	return newAdmin(client, conf.AdminConfig, log), nil
}

// NewFromProducer shares the connection of an existing producer.
func NewFromProducer(p *kafka.Producer, conf config.Config, log *zap.Logger) (*Admin, error) {
	client, err := kafka.NewAdminClientFromProducer(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client from producer: %w", err)
	}
	return newAdmin(client, conf.AdminConfig, log), nil
}

func newAdmin(api adminAPI, conf config.AdminConfig, log *zap.Logger) *Admin {
	return &Admin{api: api, conf: conf, log: log.With(zap.String("component", "kafka-admin"))}
}

func (a *Admin) CreateTopic(ctx context.Context, spec TopicSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("topic name cannot be empty")
	}

	results, err := a.api.CreateTopics(ctx, []kafka.TopicSpecification{{
		Topic:             spec.Name,
		NumPartitions:     lo.Ternary(spec.Partitions > 0, spec.Partitions, a.conf.DefaultPartitions),
		ReplicationFactor: lo.Ternary(spec.ReplicationFactor > 0, spec.ReplicationFactor, a.conf.DefaultReplicationFactor),
		Config:            spec.Config,
	}}, kafka.SetAdminOperationTimeout(a.conf.OperationTimeout))
	if err != nil {
		return fmt.Errorf("failed to create topic %s: %w", spec.Name, err)
	}

	for _, res := range results {
		switch res.Error.Code() {
		case kafka.ErrNoError:
			a.log.Info("topic created", zap.String("topic", res.Topic))
		case kafka.ErrTopicAlreadyExists:
			if !spec.IgnoreExisting {
				return fmt.Errorf("failed to create topic %s: %w", res.Topic, res.Error)
			}
			a.log.Debug("topic already exists", zap.String("topic", res.Topic))
		default:
			return fmt.Errorf("failed to create topic %s: %w", res.Topic, res.Error)
		}
	}
	return nil
}

func (a *Admin) DeleteTopic(ctx context.Context, name string) error {
	results, err := a.api.DeleteTopics(ctx, []string{name}, kafka.SetAdminOperationTimeout(a.conf.OperationTimeout))
	if err != nil {
		return fmt.Errorf("failed to delete topic %s: %w", name, err)
	}

	for _, res := range results {
		if res.Error.Code() != kafka.ErrNoError {
			return fmt.Errorf("failed to delete topic %s: %w", res.Topic, res.Error)
		}
		a.log.Info("topic deleted", zap.String("topic", res.Topic))
	}
	return nil
}

// TopicExists reads cluster metadata. All topics are listed so the lookup
// cannot trigger broker-side auto creation.
func (a *Admin) TopicExists(ctx context.Context, name string) (bool, error) {
	meta, err := a.api.GetMetadata(nil, true, a.timeoutMs(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to read metadata: %w", err)
	}

	topic, ok := meta.Topics[name]
	return ok && topic.Error.Code() == kafka.ErrNoError, nil
}

func (a *Admin) Close() {
	a.api.Close()
}

func (a *Admin) timeoutMs(ctx context.Context) int {
	timeout := a.conf.OperationTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	return int(max(timeout, time.Millisecond).Milliseconds())
}
