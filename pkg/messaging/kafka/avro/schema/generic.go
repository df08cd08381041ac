package schema

// Valuer is implemented by values whose Avro body differs from the value
// itself, such as Generic.
type Valuer interface {
	AvroValue() any
}

// Generic is a record known only at runtime, e.g. loaded from an .avsc file.
// Values holds Avro-native Go values keyed by field name.
type Generic struct {
	Schema Record
	Values map[string]any
}

func (g Generic) AvroSchema() Record { return g.Schema }

func (g Generic) AvroValue() any { return g.Values }

// BodyOf returns the value that should be written for v.
func BodyOf(v any) any {
	if valuer, ok := v.(Valuer); ok {
		return valuer.AvroValue()
	}
	return v
}
