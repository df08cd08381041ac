package encoding

import (
	"fmt"

	hambavro "github.com/hamba/avro/v2"
)

// Encoder encodes Go values to Avro binary.
type Encoder interface {
	Encode(v any, schema hambavro.Schema) ([]byte, error)
}

type hambaEncoder struct{}

func NewHambaEncoder() Encoder {
	return &hambaEncoder{}
}

func (e *hambaEncoder) Encode(v any, schema hambavro.Schema) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot encode nil value")
	}
	data, err := hambavro.Marshal(schema, v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal avro data: %w", err)
	}
	return data, nil
}
