package config

import "time"

// Subject naming strategies.
const (
	SubjectStrategyTopic       = "topic"
	SubjectStrategyRecord      = "record"
	SubjectStrategyTopicRecord = "topic-record"
)

const (
	defaultSchemaRegistryCacheCapacity = 1000
	defaultRegistryRequestTimeout      = 5 * time.Second
	defaultSubjectNameStrategy         = SubjectStrategyTopicRecord
	defaultProducerReadinessTimeout    = 30
	defaultDeliveryTimeout             = 30 * time.Second
	defaultAcks                        = "all"
	defaultLinger                      = 5 * time.Millisecond
	defaultCompression                 = "none"
	defaultFailureLogInterval          = time.Minute
	defaultAdminOperationTimeout       = 30 * time.Second
	defaultPartitions                  = 1
	defaultReplicationFactor           = 1

	minSchemaCacheCapacity = 100
	maxSchemaCacheCapacity = 100000
	minRequestTimeout      = 100 * time.Millisecond
	maxRequestTimeout      = 5 * time.Minute
	minDeliveryTimeout     = time.Second
	maxDeliveryTimeout     = 15 * time.Minute
	maxLinger              = 5 * time.Second
	maxReadinessTimeout    = 600 // seconds
)

var compatibilityModes = []string{
	"NONE",
	"BACKWARD",
	"BACKWARD_TRANSITIVE",
	"FORWARD",
	"FORWARD_TRANSITIVE",
	"FULL",
	"FULL_TRANSITIVE",
}

var subjectStrategies = []string{SubjectStrategyTopic, SubjectStrategyRecord, SubjectStrategyTopicRecord}

var ackValues = []string{"all", "-1", "0", "1"}

var compressionCodecs = []string{"none", "gzip", "snappy", "lz4", "zstd"}
