package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	hambavro "github.com/hamba/avro/v2"
)

// Decoder decodes Avro binary into a caller supplied target.
type Decoder interface {
	// Decode reads payload with the schema it was written with. Fields the
	// target does not declare are skipped, so older and newer readers both work.
	// The payload must hold exactly one value: truncated data and trailing
	// bytes are both rejected.
	Decode(payload []byte, writerSchema hambavro.Schema, target any) error
}

type hambaDecoder struct{}

func NewHambaDecoder() Decoder {
	return &hambaDecoder{}
}

func (d *hambaDecoder) Decode(payload []byte, writerSchema hambavro.Schema, target any) error {
	if target == nil {
		return &DecodeError{Err: fmt.Errorf("decode target cannot be nil")}
	}

	// hambavro.Unmarshal treats a short read inside a value as a clean end of
	// input, the stream decoder does not.
	dec := hambavro.NewDecoderForSchema(writerSchema, bytes.NewReader(payload))
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &DecodeError{Err: fmt.Errorf("failed to unmarshal avro data: %w", err)}
	}

	var rest any
	//nolint:errorlint // only a clean end of input means the value was the whole payload
	if err := dec.Decode(&rest); err != io.EOF {
		return &DecodeError{Err: fmt.Errorf("failed to unmarshal avro data: unexpected trailing bytes after value")}
	}
	return nil
}
