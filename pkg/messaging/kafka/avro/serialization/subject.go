package serialization

import (
	"fmt"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/config"
)

// SubjectNameStrategy computes the registry subject of a record published to topic.
type SubjectNameStrategy func(topic string, rec schema.Record) string

// TopicNameStrategy uses "<topic>-value": one evolving schema per topic.
func TopicNameStrategy(topic string, _ schema.Record) string {
	return topic + "-value"
}

// RecordNameStrategy uses the record full name, shared across topics.
func RecordNameStrategy(_ string, rec schema.Record) string {
	return rec.FullName()
}

// TopicRecordNameStrategy uses "<topic>-<namespace>.<name>".
func TopicRecordNameStrategy(topic string, rec schema.Record) string {
	return topic + "-" + rec.FullName()
}

// SubjectNameStrategyFor maps a config value to its strategy.
func SubjectNameStrategyFor(name string) (SubjectNameStrategy, error) {
	switch name {
	case config.SubjectStrategyTopic:
		return TopicNameStrategy, nil
	case config.SubjectStrategyRecord:
		return RecordNameStrategy, nil
	case config.SubjectStrategyTopicRecord, "":
		return TopicRecordNameStrategy, nil
	default:
		return nil, fmt.Errorf("unknown subject name strategy: %s", name)
	}
}
