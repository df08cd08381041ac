package serialization

import (
	"context"

	"github.com/Sokol111/schemapub/pkg/messaging"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/encoding"
)

// Serializer turns records into Confluent framed Avro bytes.
type Serializer interface {
	// Serialize returns [0x00][schema_id (4 bytes)][avro_data]. Every failure
	// is a *SerializationError.
	Serialize(ctx context.Context, record messaging.Record) ([]byte, error)
}

type serializer struct {
	codec    *encoding.Codec
	resolver SchemaResolver
	subject  SubjectNameStrategy
	builder  encoding.WireFormatBuilder
}

func NewSerializer(
	codec *encoding.Codec,
	resolver SchemaResolver,
	subject SubjectNameStrategy,
	builder encoding.WireFormatBuilder,
) Serializer {
	if subject == nil {
		subject = TopicRecordNameStrategy
	}
	return &serializer{
		codec:    codec,
		resolver: resolver,
		subject:  subject,
		builder:  builder,
	}
}

func (s *serializer) Serialize(ctx context.Context, record messaging.Record) ([]byte, error) {
	rec, canonical, err := s.codec.Describe(record.Value)
	if err != nil {
		return nil, &SerializationError{Topic: record.Topic, Reason: "failed to derive schema", Err: err}
	}

	fail := func(subject, reason string, err error) error {
		return &SerializationError{Topic: record.Topic, Subject: subject, Schema: canonical, Reason: reason, Err: err}
	}

	if record.Topic == "" {
		return nil, fail("", "topic cannot be empty", nil)
	}

	// Encoding locally first keeps values that cannot be written from
	// registering a schema.
	encoded, err := s.codec.Encode(record.Value)
	if err != nil {
		return nil, fail("", "failed to encode avro data", err)
	}

	subject := s.subject(record.Topic, rec)
	schemaID, err := s.resolver.Resolve(ctx, subject, rec)
	if err != nil {
		return nil, fail(subject, reasonFor(err), err)
	}

	data, err := s.builder.Build(schemaID, encoded.Payload)
	if err != nil {
		return nil, fail(subject, "failed to build wire format", err)
	}
	return data, nil
}

func reasonFor(err error) string {
	switch {
	case IsIncompatible(err):
		return "schema rejected by registry"
	case IsRegistryUnavailable(err):
		return "schema registry unavailable"
	default:
		return "failed to resolve schema id"
	}
}
