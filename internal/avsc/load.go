// Package avsc turns .avsc files and JSON documents into runtime records that
// the serializer can publish.
package avsc

import (
	"fmt"
	"os"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/ettle/strcase"
	hambavro "github.com/hamba/avro/v2"
)

// LoadFile reads and converts the record schema at path.
func LoadFile(path string) (schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Record{}, fmt.Errorf("failed to read schema file: %w", err)
	}
	rec, err := Parse(data)
	if err != nil {
		return schema.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Parse converts an Avro record schema document.
func Parse(data []byte) (schema.Record, error) {
	parsed, err := hambavro.ParseBytesWithCache(data, "", &hambavro.SchemaCache{})
	if err != nil {
		return schema.Record{}, fmt.Errorf("invalid avro schema: %w", err)
	}
	rs, ok := parsed.(*hambavro.RecordSchema)
	if !ok {
		return schema.Record{}, fmt.Errorf("top-level schema must be a record, got %s", parsed.Type())
	}
	return convertRecord(rs)
}

// LogicalName turns a user supplied override such as "value_1" or
// "order-created" into an Avro record name.
func LogicalName(name string) string {
	return strcase.ToPascal(name)
}

func convertRecord(rs *hambavro.RecordSchema) (schema.Record, error) {
	rec := schema.Record{
		Name:      rs.Name(),
		Namespace: rs.Namespace(),
		Doc:       rs.Doc(),
		Fields:    make([]schema.Field, 0, len(rs.Fields())),
	}
	for _, f := range rs.Fields() {
		t, err := convertType(f.Type())
		if err != nil {
			return schema.Record{}, fmt.Errorf("field %s: %w", f.Name(), err)
		}
		field := schema.Field{Name: f.Name(), Type: t, Doc: f.Doc()}
		if f.HasDefault() {
			field = field.WithDefault(f.Default())
		}
		rec.Fields = append(rec.Fields, field)
	}
	return rec, nil
}

func convertType(s hambavro.Schema) (schema.Type, error) {
	switch ts := s.(type) {
	case *hambavro.PrimitiveSchema:
		base := schema.Primitive(ts.Type())
		if logical := ts.Logical(); logical != nil {
			return schema.Logical{Base: base, Name: string(logical.Type())}, nil
		}
		return base, nil
	case *hambavro.RecordSchema:
		return convertRecord(ts)
	case *hambavro.EnumSchema:
		return schema.Enum{
			Name:      ts.Name(),
			Namespace: ts.Namespace(),
			Symbols:   ts.Symbols(),
			Default:   ts.Default(),
		}, nil
	case *hambavro.ArraySchema:
		items, err := convertType(ts.Items())
		if err != nil {
			return nil, err
		}
		return schema.Array{Items: items}, nil
	case *hambavro.MapSchema:
		values, err := convertType(ts.Values())
		if err != nil {
			return nil, err
		}
		return schema.Map{Values: values}, nil
	case *hambavro.UnionSchema:
		union := make(schema.Union, 0, len(ts.Types()))
		for _, branch := range ts.Types() {
			t, err := convertType(branch)
			if err != nil {
				return nil, err
			}
			union = append(union, t)
		}
		return union, nil
	case *hambavro.NullSchema:
		return schema.Null, nil
	default:
		return nil, fmt.Errorf("unsupported avro type %s", s.Type())
	}
}
