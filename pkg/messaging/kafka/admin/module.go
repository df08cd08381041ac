package admin

import (
	"context"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewAdminModule provides an *Admin sharing the producer's connection.
func NewAdminModule() fx.Option {
	return fx.Provide(provideAdmin)
}

func provideAdmin(lc fx.Lifecycle, p *kafka.Producer, conf config.Config, log *zap.Logger) (*Admin, error) {
	a, err := NewFromProducer(p, conf, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			a.Close()
			return nil
		},
	})
	return a, nil
}
