package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Config{
		Brokers:        "localhost:9092",
		SchemaRegistry: SchemaRegistryConfig{URL: "http://schema-registry:8081"},
	}
	applyDefaults(&cfg)
	return cfg
}

func TestValidateConfig_Success(t *testing.T) {
	cfg := validConfig()

	assert.NoError(t, validateConfig(&cfg))
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty brokers",
			mutate:  func(c *Config) { c.Brokers = " \t" },
			wantErr: "kafka brokers cannot be empty",
		},
		{
			name:    "empty registry url",
			mutate:  func(c *Config) { c.SchemaRegistry.URL = "" },
			wantErr: "schema registry URL cannot be empty",
		},
		{
			name:    "cache capacity too small",
			mutate:  func(c *Config) { c.SchemaRegistry.CacheCapacity = 10 },
			wantErr: "schema registry cache capacity must be between 100 and 100000, got: 10",
		},
		{
			name:    "request timeout too large",
			mutate:  func(c *Config) { c.SchemaRegistry.RequestTimeout = time.Hour },
			wantErr: "schema registry request timeout must be between",
		},
		{
			name:    "unknown compatibility",
			mutate:  func(c *Config) { c.SchemaRegistry.Compatibility = "SIDEWAYS" },
			wantErr: "schema registry compatibility must be one of",
		},
		{
			name:    "unknown subject strategy",
			mutate:  func(c *Config) { c.SchemaRegistry.SubjectNameStrategy = "random" },
			wantErr: "subject name strategy must be one of",
		},
		{
			name:    "username without password",
			mutate:  func(c *Config) { c.SchemaRegistry.Username = "svc" },
			wantErr: "username and password must be set together",
		},
		{
			name:    "readiness timeout too large",
			mutate:  func(c *Config) { c.ProducerConfig.ReadinessTimeoutSeconds = 601 },
			wantErr: "producer readiness timeout must be between 0 and 600 seconds, got: 601",
		},
		{
			name:    "delivery timeout too small",
			mutate:  func(c *Config) { c.ProducerConfig.DeliveryTimeout = time.Millisecond },
			wantErr: "producer delivery timeout must be between",
		},
		{
			name:    "invalid acks",
			mutate:  func(c *Config) { c.ProducerConfig.Acks = "2" },
			wantErr: "producer acks must be one of",
		},
		{
			name: "idempotence without acks all",
			mutate: func(c *Config) {
				c.ProducerConfig.EnableIdempotence = true
				c.ProducerConfig.Acks = "1"
			},
			wantErr: "producer idempotence requires acks=all",
		},
		{
			name:    "linger too large",
			mutate:  func(c *Config) { c.ProducerConfig.Linger = time.Minute },
			wantErr: "producer linger must be between",
		},
		{
			name:    "unknown compression",
			mutate:  func(c *Config) { c.ProducerConfig.Compression = "brotli" },
			wantErr: "producer compression must be one of",
		},
		{
			name:    "negative partitions",
			mutate:  func(c *Config) { c.AdminConfig.DefaultPartitions = -1 },
			wantErr: "admin default partitions must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validateConfig(&cfg)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
