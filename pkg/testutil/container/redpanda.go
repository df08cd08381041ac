package container

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	dockercontainer "github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedpandaContainer runs a single-node Redpanda, which serves both the Kafka
// API and a Confluent-compatible Schema Registry.
type RedpandaContainer struct {
	Container         testcontainers.Container
	Brokers           string
	SchemaRegistryURL string
}

// RedpandaOption configures the Redpanda container.
type RedpandaOption func(*redpandaOptions)

type redpandaOptions struct {
	image          string
	startupTimeout time.Duration
}

// WithRedpandaImage sets the Redpanda image to use.
func WithRedpandaImage(image string) RedpandaOption {
	return func(o *redpandaOptions) {
		o.image = image
	}
}

// WithStartupTimeout bounds the wait for both listeners.
func WithStartupTimeout(d time.Duration) RedpandaOption {
	return func(o *redpandaOptions) {
		o.startupTimeout = d
	}
}

// StartRedpandaContainer starts Redpanda with the Kafka listener bound to a
// free host port, so the advertised address is reachable from the test.
func StartRedpandaContainer(ctx context.Context, opts ...RedpandaOption) (*RedpandaContainer, error) {
	options := &redpandaOptions{
		image:          "redpandadata/redpanda:v24.1.1",
		startupTimeout: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(options)
	}

	kafkaPort, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}
	kafkaPortStr := strconv.Itoa(kafkaPort)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        options.image,
			ExposedPorts: []string{"8081/tcp", "9092/tcp"},
			Cmd: []string{
				"redpanda", "start",
				"--mode", "dev-container",
				"--smp", "1",
				"--memory", "512M",
				"--reserve-memory", "0M",
				"--overprovisioned",
				"--node-id", "0",
				"--kafka-addr", "PLAINTEXT://0.0.0.0:9092",
				"--advertise-kafka-addr", "PLAINTEXT://127.0.0.1:" + kafkaPortStr,
				"--schema-registry-addr", "0.0.0.0:8081",
			},
			HostConfigModifier: func(cfg *dockercontainer.HostConfig) {
				cfg.PortBindings = nat.PortMap{
					"9092/tcp": []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: kafkaPortStr}},
				}
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("9092/tcp"),
				wait.ForHTTP("/subjects").WithPort("8081/tcp").WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
			).WithDeadline(options.startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redpanda container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	registryPort, err := container.MappedPort(ctx, "8081")
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get schema registry port: %w", err)
	}

	return &RedpandaContainer{
		Container:         container,
		Brokers:           "127.0.0.1:" + kafkaPortStr,
		SchemaRegistryURL: fmt.Sprintf("http://%s:%s", host, registryPort.Port()),
	}, nil
}

// Terminate terminates the container.
func (r *RedpandaContainer) Terminate(ctx context.Context) error {
	if r.Container != nil {
		return r.Container.Terminate(ctx)
	}
	return nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close() //nolint:errcheck // released for the container
	return l.Addr().(*net.TCPAddr).Port, nil
}
