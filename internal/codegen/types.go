package codegen

import (
	"fmt"
	"sort"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/dave/jennifer/jen"
	"github.com/ettle/strcase"
)

var primitiveNames = map[schema.Primitive]string{
	schema.Null:    "Null",
	schema.Boolean: "Boolean",
	schema.Int:     "Int",
	schema.Long:    "Long",
	schema.Float:   "Float",
	schema.Double:  "Double",
	schema.Bytes:   "Bytes",
	schema.String:  "String",
}

// goName turns an Avro name into an exported Go identifier.
func goName(name string) string {
	return strcase.ToGoPascal(name)
}

// goType returns the Go type a value of t is encoded from.
func (e *emitter) goType(t schema.Type) (jen.Code, error) {
	switch tt := t.(type) {
	case schema.Primitive:
		switch tt {
		case schema.Null:
			return jen.Any(), nil
		case schema.Boolean:
			return jen.Bool(), nil
		case schema.Int:
			return jen.Int(), nil
		case schema.Long:
			return jen.Int64(), nil
		case schema.Float:
			return jen.Float32(), nil
		case schema.Double:
			return jen.Float64(), nil
		case schema.Bytes:
			return jen.Index().Byte(), nil
		case schema.String:
			return jen.String(), nil
		}
		return nil, fmt.Errorf("unsupported primitive %s", tt)
	case schema.Logical:
		switch tt.Name {
		case "date", "timestamp-millis", "timestamp-micros", "local-timestamp-millis", "local-timestamp-micros":
			return jen.Qual("time", "Time"), nil
		case "time-millis", "time-micros":
			return jen.Qual("time", "Duration"), nil
		}
		return e.goType(tt.Base)
	case schema.Enum:
		return jen.String(), nil
	case schema.Array:
		items, err := e.goType(tt.Items)
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(items), nil
	case schema.Map:
		values, err := e.goType(tt.Values)
		if err != nil {
			return nil, err
		}
		return jen.Map(jen.String()).Add(values), nil
	case schema.Union:
		if inner, ok := optionalOf(tt); ok {
			typ, err := e.goType(inner)
			if err != nil {
				return nil, err
			}
			return jen.Op("*").Add(typ), nil
		}
		return jen.Any(), nil
	case schema.Record:
		name, err := e.typeName(tt)
		if err != nil {
			return nil, err
		}
		return jen.Id(name), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", t)
	}
}

// schemaExpr returns the schema package expression describing t.
func (e *emitter) schemaExpr(t schema.Type) (jen.Code, error) {
	switch tt := t.(type) {
	case schema.Primitive:
		name, ok := primitiveNames[tt]
		if !ok {
			return nil, fmt.Errorf("unsupported primitive %s", tt)
		}
		return jen.Qual(schemaImport, name), nil
	case schema.Logical:
		base, err := e.schemaExpr(tt.Base)
		if err != nil {
			return nil, err
		}
		return jen.Qual(schemaImport, "Logical").Values(
			jen.Id("Base").Op(":").Add(base),
			jen.Id("Name").Op(":").Lit(tt.Name),
		), nil
	case schema.Enum:
		items := []jen.Code{jen.Id("Name").Op(":").Lit(tt.Name)}
		if tt.Namespace != "" {
			items = append(items, jen.Id("Namespace").Op(":").Lit(tt.Namespace))
		}
		symbols := make([]jen.Code, len(tt.Symbols))
		for i, s := range tt.Symbols {
			symbols[i] = jen.Lit(s)
		}
		items = append(items, jen.Id("Symbols").Op(":").Index().String().Values(symbols...))
		if tt.Default != "" {
			items = append(items, jen.Id("Default").Op(":").Lit(tt.Default))
		}
		return jen.Qual(schemaImport, "Enum").Values(items...), nil
	case schema.Array:
		items, err := e.schemaExpr(tt.Items)
		if err != nil {
			return nil, err
		}
		return jen.Qual(schemaImport, "Array").Values(jen.Id("Items").Op(":").Add(items)), nil
	case schema.Map:
		values, err := e.schemaExpr(tt.Values)
		if err != nil {
			return nil, err
		}
		return jen.Qual(schemaImport, "Map").Values(jen.Id("Values").Op(":").Add(values)), nil
	case schema.Union:
		if inner, ok := optionalOf(tt); ok {
			expr, err := e.schemaExpr(inner)
			if err != nil {
				return nil, err
			}
			return jen.Qual(schemaImport, "Optional").Call(expr), nil
		}
		branches := make([]jen.Code, len(tt))
		for i, branch := range tt {
			expr, err := e.schemaExpr(branch)
			if err != nil {
				return nil, err
			}
			branches[i] = expr
		}
		return jen.Qual(schemaImport, "Union").Values(branches...), nil
	case schema.Record:
		name, err := e.typeName(tt)
		if err != nil {
			return nil, err
		}
		return jen.Id(name).Values().Dot("AvroSchema").Call(), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", t)
	}
}

// optionalOf reports whether u is ["null", t] and returns t.
func optionalOf(u schema.Union) (schema.Type, bool) {
	if len(u) != 2 {
		return nil, false
	}
	if p, ok := u[0].(schema.Primitive); !ok || p != schema.Null {
		return nil, false
	}
	return u[1], true
}

// defaultExpr renders a field default as decoded by the schema parser.
func defaultExpr(v any) (jen.Code, error) {
	switch d := v.(type) {
	case nil:
		return jen.Nil(), nil
	case bool, string, int, int64, float32, float64:
		return jen.Lit(d), nil
	case []byte:
		// Avro JSON maps each byte to the code point of the same value.
		runes := make([]rune, len(d))
		for i, b := range d {
			runes[i] = rune(b)
		}
		return jen.Lit(string(runes)), nil
	case []any:
		items := make([]jen.Code, len(d))
		for i, item := range d {
			expr, err := defaultExpr(item)
			if err != nil {
				return nil, err
			}
			items[i] = expr
		}
		return jen.Index().Any().Values(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]jen.Code, len(keys))
		for i, k := range keys {
			expr, err := defaultExpr(d[k])
			if err != nil {
				return nil, err
			}
			items[i] = jen.Lit(k).Op(":").Add(expr)
		}
		return jen.Map(jen.String()).Any().Values(items...), nil
	default:
		return nil, fmt.Errorf("unsupported default value %v of type %T", v, v)
	}
}
