package producer

import (
	"context"
	"time"

	"github.com/Sokol111/schemapub/pkg/core/logger"
	"github.com/Sokol111/schemapub/pkg/messaging"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// PublishWithRetry publishes record, retrying failures IsRetryable accepts
// until b stops or ctx ends. Retrying a delivery timeout may duplicate the
// record on the topic.
func PublishWithRetry(ctx context.Context, p Publisher, record messaging.Record, b backoff.BackOff) (Ack, error) {
	var (
		ack      Ack
		attempts int
	)

	operation := func() error {
		attempts++
		var err error
		ack, err = p.Publish(ctx, record)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		logger.FromContext(ctx).Warn("publish retry",
			zap.String("topic", record.Topic),
			zap.Int("attempt", attempts),
			zap.Duration("delay", delay),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return Ack{}, err
	}
	return ack, nil
}
