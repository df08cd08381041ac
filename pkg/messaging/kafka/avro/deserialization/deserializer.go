package deserialization

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/encoding"
)

// WriterSchemaSource returns the schema a payload was written with.
type WriterSchemaSource interface {
	SchemaByID(ctx context.Context, id int) (string, error)
}

// Deserializer reads Confluent framed Avro bytes.
type Deserializer interface {
	// Deserialize decodes data into target and returns the schema ID found in
	// the frame. Malformed frames and payloads yield *encoding.DecodeError.
	Deserialize(ctx context.Context, data []byte, target any) (int, error)
}

type avroDeserializer struct {
	parser  encoding.WireFormatParser
	schemas WriterSchemaSource
	codec   *encoding.Codec
}

func NewDeserializer(parser encoding.WireFormatParser, schemas WriterSchemaSource, codec *encoding.Codec) Deserializer {
	return &avroDeserializer{
		parser:  parser,
		schemas: schemas,
		codec:   codec,
	}
}

func (d *avroDeserializer) Deserialize(ctx context.Context, data []byte, target any) (int, error) {
	schemaID, payload, err := d.parser.Parse(data)
	if err != nil {
		return 0, err
	}

	writerSchema, err := d.schemas.SchemaByID(ctx, schemaID)
	if err != nil {
		return schemaID, fmt.Errorf("failed to resolve schema for ID %d: %w", schemaID, err)
	}

	if err := d.codec.Decode(writerSchema, payload, target); err != nil {
		var decodeErr *encoding.DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.SchemaID = schemaID
		}
		return schemaID, err
	}

	return schemaID, nil
}
