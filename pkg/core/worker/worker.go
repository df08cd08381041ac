package worker

import (
	"context"
	"sync"

	"github.com/Sokol111/schemapub/pkg/core/health"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Runnable is a long-running loop that returns when ctx is cancelled or on fatal error.
type Runnable interface {
	Run(ctx context.Context) error
}

// Options control when the worker starts and what a fatal error does.
type Options struct {
	WaitReady       bool
	ShutdownOnError bool
}

// Option configures a worker.
type Option func(*Options)

// WithReady delays Run until every registered component is ready.
func WithReady() Option {
	return func(o *Options) {
		o.WaitReady = true
	}
}

// WithShutdown stops the application when Run returns an error.
func WithShutdown() Option {
	return func(o *Options) {
		o.ShutdownOnError = true
	}
}

type baseWorker struct {
	name       string
	cancel     context.CancelFunc
	done       chan struct{}
	once       sync.Once
	log        *zap.Logger
	run        func(ctx context.Context) error
	shutdowner fx.Shutdowner
	readiness  health.ReadinessWaiter
	options    Options
}

// Start launches the loop in its own goroutine.
func (w *baseWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	w.log.Info("starting worker")
	go func() {
		defer close(w.done)
		w.loop(ctx)
	}()
}

func (w *baseWorker) loop(ctx context.Context) {
	if w.options.WaitReady {
		if err := w.readiness.WaitReady(ctx); err != nil {
			w.log.Info("worker cancelled while waiting for readiness")
			return
		}
	}

	err := w.run(ctx)
	if err == nil {
		w.log.Info("worker stopped")
		return
	}

	if !w.options.ShutdownOnError {
		w.log.Error("worker stopped with error", zap.Error(err))
		return
	}

	w.log.Error("worker failed, initiating shutdown", zap.Error(err))
	if shutdownErr := w.shutdowner.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
		w.log.Error("failed to initiate shutdown", zap.Error(shutdownErr))
	}
}

// Stop cancels the loop and waits for it to return or for ctx to expire.
func (w *baseWorker) Stop(ctx context.Context) {
	w.once.Do(func() {
		w.log.Info("stopping worker")
		if w.cancel != nil {
			w.cancel()
		}
	})

	if w.done == nil {
		return
	}

	select {
	case <-w.done:
	case <-ctx.Done():
		w.log.Warn("worker did not stop in time")
	}
}

// Register returns an fx constructor that runs dep as a named background worker
// tied to the application lifecycle.
//
//	fx.Invoke(worker.Register[*producer.EventsMonitor]("kafka-events", worker.WithReady()))
func Register[T Runnable](name string, opts ...Option) any {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	return func(lc fx.Lifecycle, log *zap.Logger, shutdowner fx.Shutdowner, readiness health.ReadinessWaiter, dep T) {
		w := &baseWorker{
			name:       name,
			log:        log.With(zap.String("worker", name)),
			run:        dep.Run,
			shutdowner: shutdowner,
			readiness:  readiness,
			options:    options,
		}

		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				w.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				w.Stop(ctx)
				return nil
			},
		})
	}
}
