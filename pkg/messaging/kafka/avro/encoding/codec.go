package encoding

import (
	"fmt"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/mapping"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
)

// Encoded is the local half of serialization: the descriptor a value was
// written with, its canonical text and the Avro body without framing.
type Encoded struct {
	Schema    schema.Record
	Canonical string
	Payload   []byte
}

// Codec derives schemas from values and converts between values and Avro
// bodies. It never talks to a registry.
type Codec struct {
	types   *mapping.TypeMapping
	schemas *SchemaCache
	encoder Encoder
	decoder Decoder
}

func NewCodec(types *mapping.TypeMapping) *Codec {
	return &Codec{
		types:   types,
		schemas: NewSchemaCache(),
		encoder: NewHambaEncoder(),
		decoder: NewHambaDecoder(),
	}
}

// Describe returns the descriptor of v and its canonical JSON.
func (c *Codec) Describe(v any) (schema.Record, string, error) {
	rec, err := c.types.SchemaOf(v)
	if err != nil {
		return schema.Record{}, "", err
	}
	canonical, err := rec.Canonical()
	if err != nil {
		return schema.Record{}, "", fmt.Errorf("invalid schema %s: %w", rec.FullName(), err)
	}
	return rec, canonical, nil
}

// Encode describes v and writes it with that schema.
func (c *Codec) Encode(v any) (*Encoded, error) {
	rec, canonical, err := c.Describe(v)
	if err != nil {
		return nil, err
	}

	parsed, err := c.schemas.Parse(canonical)
	if err != nil {
		return nil, err
	}

	payload, err := c.encoder.Encode(schema.BodyOf(v), parsed)
	if err != nil {
		return nil, err
	}

	return &Encoded{Schema: rec, Canonical: canonical, Payload: payload}, nil
}

// Decode reads payload written with writerSchema into target.
func (c *Codec) Decode(writerSchema string, payload []byte, target any) error {
	parsed, err := c.schemas.Parse(writerSchema)
	if err != nil {
		return &DecodeError{Err: err}
	}
	return c.decoder.Decode(payload, parsed, target)
}
