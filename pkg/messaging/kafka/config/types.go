package config

import "time"

// Config is the kafka section of the application config.
type Config struct {
	Brokers        string               `mapstructure:"brokers"`         // Comma-separated broker addresses, e.g. "localhost:9092,localhost:9093"
	ClientID       string               `mapstructure:"client-id"`       // client.id reported to the brokers (defaults to the service name)
	SchemaRegistry SchemaRegistryConfig `mapstructure:"schema-registry"` // Schema Registry connection and subject policy
	ProducerConfig ProducerConfig       `mapstructure:"producer-config"` // Producer tuning and startup behaviour
	AdminConfig    AdminConfig          `mapstructure:"admin-config"`    // Topic administration defaults
}

// SchemaRegistryConfig configures the Confluent-compatible registry client.
type SchemaRegistryConfig struct {
	URL                 string        `mapstructure:"url"`                   // Registry URL (required), e.g. "http://schema-registry:8081"
	Username            string        `mapstructure:"username"`              // Basic auth user (optional)
	Password            string        `mapstructure:"password"`              // Basic auth password (optional)
	CacheCapacity       int           `mapstructure:"cache-capacity"`        // Max cached (subject, schema) IDs (100-100000, default 1000)
	RequestTimeout      time.Duration `mapstructure:"request-timeout"`       // Per-request HTTP timeout (default 5s)
	Compatibility       string        `mapstructure:"compatibility"`         // Mode applied to subjects before first registration; empty keeps the registry setting
	SubjectNameStrategy string        `mapstructure:"subject-name-strategy"` // topic | record | topic-record (default topic-record)
	Normalize           bool          `mapstructure:"normalize"`             // Ask the registry to normalize schemas on register/lookup
}

// ProducerConfig tunes the underlying librdkafka producer.
type ProducerConfig struct {
	ReadinessTimeoutSeconds int           `mapstructure:"readiness-timeout-seconds"` // Wait for brokers at startup (0 = no timeout, max 600s, default 30s)
	FailOnBrokerError       bool          `mapstructure:"fail-on-broker-error"`      // Fail startup if brokers are unreachable (default false)
	DeliveryTimeout         time.Duration `mapstructure:"delivery-timeout"`          // message.timeout.ms (default 30s)
	Acks                    string        `mapstructure:"acks"`                      // "all", "1" or "0" (default "all")
	EnableIdempotence       bool          `mapstructure:"enable-idempotence"`        // enable.idempotence
	Linger                  time.Duration `mapstructure:"linger"`                    // linger.ms (default 5ms)
	Compression             string        `mapstructure:"compression"`               // none | gzip | snappy | lz4 | zstd (default none)
	FailureLogInterval      time.Duration `mapstructure:"failure-log-interval"`      // Throttle window for repeated delivery warnings per topic (default 1m)
}

// AdminConfig holds defaults for topic administration.
type AdminConfig struct {
	OperationTimeout         time.Duration `mapstructure:"operation-timeout"`          // Broker-side timeout for create/delete (default 30s)
	DefaultPartitions        int           `mapstructure:"default-partitions"`         // Partitions for new topics (default 1)
	DefaultReplicationFactor int           `mapstructure:"default-replication-factor"` // Replication factor for new topics (default 1)
}
