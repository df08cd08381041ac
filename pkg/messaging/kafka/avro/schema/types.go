package schema

// Type is an Avro type as it appears in the "type" position of a field.
type Type interface {
	// canonical returns a value whose encoding/json output is the canonical form of the type.
	canonical() any
}

// Primitive is one of the Avro primitive type names.
type Primitive string

const (
	Null    Primitive = "null"
	Boolean Primitive = "boolean"
	Int     Primitive = "int"
	Long    Primitive = "long"
	Float   Primitive = "float"
	Double  Primitive = "double"
	Bytes   Primitive = "bytes"
	String  Primitive = "string"
)

func (p Primitive) canonical() any { return string(p) }

// Union is an ordered list of branch types.
type Union []Type

func (u Union) canonical() any {
	out := make([]any, len(u))
	for i, t := range u {
		out[i] = t.canonical()
	}
	return out
}

// Optional is the ["null", t] union. Fields of this type should default to null,
// see OptionalField.
func Optional(t Type) Union {
	return Union{Null, t}
}

// Array is an Avro array of Items.
type Array struct {
	Items Type
}

func (a Array) canonical() any {
	return struct {
		Type  string `json:"type"`
		Items any    `json:"items"`
	}{"array", a.Items.canonical()}
}

// Map is an Avro map with string keys and Values.
type Map struct {
	Values Type
}

func (m Map) canonical() any {
	return struct {
		Type   string `json:"type"`
		Values any    `json:"values"`
	}{"map", m.Values.canonical()}
}

// Enum is a named Avro enum.
type Enum struct {
	Name      string
	Namespace string
	Symbols   []string
	Default   string
}

func (e Enum) canonical() any {
	return struct {
		Type      string   `json:"type"`
		Name      string   `json:"name"`
		Namespace string   `json:"namespace,omitempty"`
		Symbols   []string `json:"symbols"`
		Default   string   `json:"default,omitempty"`
	}{"enum", e.Name, e.Namespace, e.Symbols, e.Default}
}

// FullName returns namespace.name, or name when the namespace is empty.
func (e Enum) FullName() string {
	return fullName(e.Namespace, e.Name)
}

// Logical annotates an underlying type with an Avro logical type,
// e.g. Logical{Base: Long, Name: "timestamp-millis"}.
type Logical struct {
	Base Type
	Name string
}

func (l Logical) canonical() any {
	return struct {
		Type        any    `json:"type"`
		LogicalType string `json:"logicalType"`
	}{l.Base.canonical(), l.Name}
}

func fullName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
