package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	magicByte = 0x00

	// HeaderSize is the length of the Confluent framing that precedes the Avro body.
	HeaderSize = 5
)

// WireFormatParser parses Confluent wire format messages.
type WireFormatParser interface {
	// Parse extracts schema ID and payload from [0x00][schema_id (4 bytes)][payload].
	Parse(data []byte) (schemaID int, payload []byte, err error)
}

// WireFormatBuilder builds Confluent wire format messages.
type WireFormatBuilder interface {
	// Build returns [0x00][schema_id (4 bytes, big-endian)][payload].
	Build(schemaID int, payload []byte) ([]byte, error)
}

type confluentWireFormat struct{}

func NewConfluentWireFormat() (WireFormatParser, WireFormatBuilder) {
	f := &confluentWireFormat{}
	return f, f
}

func (w *confluentWireFormat) Parse(data []byte) (int, []byte, error) {
	if len(data) < HeaderSize {
		return 0, nil, &DecodeError{Err: fmt.Errorf("data too short: expected at least %d bytes, got %d", HeaderSize, len(data))}
	}
	if data[0] != magicByte {
		return 0, nil, &DecodeError{Err: fmt.Errorf("invalid magic byte: expected 0x00, got 0x%02x", data[0])}
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:HeaderSize]))
	return schemaID, data[HeaderSize:], nil
}

func (w *confluentWireFormat) Build(schemaID int, payload []byte) ([]byte, error) {
	if schemaID < 0 || schemaID > math.MaxUint32 {
		return nil, fmt.Errorf("schema id %d does not fit in 4 bytes", schemaID)
	}

	result := make([]byte, HeaderSize+len(payload))
	result[0] = magicByte
	binary.BigEndian.PutUint32(result[1:HeaderSize], uint32(schemaID))
	copy(result[HeaderSize:], payload)
	return result, nil
}
