package encoding

import "fmt"

// DecodeError reports bytes that could not be turned back into a value:
// malformed framing, an unparseable writer schema or a payload that does
// not match the schema it claims to be written with.
type DecodeError struct {
	SchemaID int
	Err      error
}

func (e *DecodeError) Error() string {
	if e.SchemaID > 0 {
		return fmt.Sprintf("failed to decode avro message (schema id %d): %v", e.SchemaID, e.Err)
	}
	return fmt.Sprintf("failed to decode avro message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
