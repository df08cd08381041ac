// Package schema describes Avro record schemas as Go values and renders them
// as deterministic canonical JSON.
//
// Value types publish their shape by implementing Describer:
//
//	type Value1 struct {
//	    Value string `avro:"value"`
//	}
//
//	func (Value1) AvroSchema() schema.Record {
//	    return schema.Record{
//	        Name:      "Value1",
//	        Namespace: "com.example",
//	        Fields:    []schema.Field{{Name: "value", Type: schema.String}},
//	    }
//	}
//
// Two types that declare the same Name and Namespace evolve the same logical
// schema and share a registry subject.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Describer is implemented by value types that know their Avro schema.
type Describer interface {
	AvroSchema() Record
}

// Record is an Avro record schema.
type Record struct {
	Name      string
	Namespace string
	Doc       string
	Fields    []Field
}

// Field is a single record field. A field has a default only when HasDefault
// is set, so a null default can be expressed.
type Field struct {
	Name       string
	Type       Type
	Doc        string
	Default    any
	HasDefault bool
}

// OptionalField returns a ["null", t] field defaulting to null.
func OptionalField(name string, t Type) Field {
	return Field{Name: name, Type: Optional(t), HasDefault: true}
}

// WithDefault returns a copy of f carrying def as its default.
func (f Field) WithDefault(def any) Field {
	f.Default = def
	f.HasDefault = true
	return f
}

// FullName returns namespace.name, or name when the namespace is empty.
func (r Record) FullName() string {
	return fullName(r.Namespace, r.Name)
}

// WithName returns a copy of r under another logical name. This is how a new
// Go type takes over the subject of an existing schema.
func (r Record) WithName(name string) Record {
	r.Name = name
	return r
}

// WithNamespace returns a copy of r in another namespace.
func (r Record) WithNamespace(namespace string) Record {
	r.Namespace = namespace
	return r
}

func (r Record) canonical() any {
	fields := make([]any, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = f.canonical()
	}
	return struct {
		Type      string `json:"type"`
		Name      string `json:"name"`
		Namespace string `json:"namespace,omitempty"`
		Doc       string `json:"doc,omitempty"`
		Fields    []any  `json:"fields"`
	}{"record", r.Name, r.Namespace, r.Doc, fields}
}

func (f Field) canonical() any {
	if !f.HasDefault {
		return struct {
			Name string `json:"name"`
			Type any    `json:"type"`
			Doc  string `json:"doc,omitempty"`
		}{f.Name, f.Type.canonical(), f.Doc}
	}
	return struct {
		Name    string `json:"name"`
		Type    any    `json:"type"`
		Doc     string `json:"doc,omitempty"`
		Default any    `json:"default"`
	}{f.Name, f.Type.canonical(), f.Doc, f.Default}
}

// MarshalJSON renders the canonical JSON of r.
func (r Record) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.canonical()); err != nil {
		return nil, fmt.Errorf("failed to encode schema %s: %w", r.FullName(), err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Canonical returns the canonical JSON of r as a string.
//
// Keys are emitted in a fixed order (type, name, namespace, doc, fields and,
// per field, name, type, doc, default) without whitespace, so equal
// descriptors always produce byte-identical output.
func (r Record) Canonical() (string, error) {
	b, err := r.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
