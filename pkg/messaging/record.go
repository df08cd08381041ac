package messaging

import "time"

// Record is a single message to publish. Value must implement
// schema.Describer or be bound in the avro TypeMapping.
type Record struct {
	Topic     string
	Key       []byte
	Value     any
	Timestamp time.Time // zero means broker time
	Headers   map[string]string
}
