package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type component struct {
	startedAt time.Time
	readyAt   time.Time
}

type readiness struct {
	mu         sync.Mutex
	components map[string]*component
	readyCh    chan struct{}
	readyOnce  sync.Once
	log        *zap.Logger
}

func newReadiness(log *zap.Logger) *readiness {
	return &readiness{
		components: make(map[string]*component),
		readyCh:    make(chan struct{}),
		log:        log,
	}
}

func (r *readiness) AddComponent(name string) func() {
	if name == "" {
		panic("readiness: component name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[name]; exists {
		r.log.Warn("component already registered", zap.String("component", name))
	} else {
		r.components[name] = &component{startedAt: time.Now()}
	}

	return func() { r.markReady(name) }
}

func (r *readiness) markReady(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.components[name]
	if !c.readyAt.IsZero() {
		return
	}
	c.readyAt = time.Now()
	r.log.Debug("component ready", zap.String("component", name), zap.Duration("startup", c.readyAt.Sub(c.startedAt)))

	for _, other := range r.components {
		if other.readyAt.IsZero() {
			return
		}
	}

	r.readyOnce.Do(func() {
		close(r.readyCh)
		r.log.Info("all components are ready", zap.Int("component_count", len(r.components)))
	})
}

func (r *readiness) IsReady() bool {
	select {
	case <-r.readyCh:
		return true
	default:
		return false
	}
}

func (r *readiness) GetStatus() ReadinessStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := ReadinessStatus{
		Ready:      r.IsReady(),
		Components: make([]ComponentStatus, 0, len(r.components)),
	}

	for name, c := range r.components {
		status.Components = append(status.Components, ComponentStatus{
			Name:      name,
			Ready:     !c.readyAt.IsZero(),
			StartedAt: c.startedAt,
			ReadyAt:   c.readyAt,
		})
		if status.Ready && c.readyAt.After(status.ReadyAt) {
			status.ReadyAt = c.readyAt
		}
	}

	sort.Slice(status.Components, func(i, j int) bool {
		return status.Components[i].Name < status.Components[j].Name
	})

	return status
}

func (r *readiness) WaitReady(ctx context.Context) error {
	select {
	case <-r.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
