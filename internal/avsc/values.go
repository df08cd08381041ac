package avsc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/samber/lo"
)

// Decode reads a JSON object and converts it into a Generic value of rec.
func Decode(rec schema.Record, data []byte) (schema.Generic, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return schema.Generic{}, fmt.Errorf("value must be a JSON object: %w", err)
	}

	values, err := convertFields(rec, raw)
	if err != nil {
		return schema.Generic{}, err
	}
	return schema.Generic{Schema: rec, Values: values}, nil
}

func convertFields(rec schema.Record, raw map[string]any) (map[string]any, error) {
	known := lo.SliceToMap(rec.Fields, func(f schema.Field) (string, struct{}) {
		return f.Name, struct{}{}
	})
	for name := range raw {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%s has no field %q", rec.FullName(), name)
		}
	}

	out := make(map[string]any, len(rec.Fields))
	for _, f := range rec.Fields {
		v, present := raw[f.Name]
		if !present {
			if !f.HasDefault {
				return nil, fmt.Errorf("%s: missing required field %q", rec.FullName(), f.Name)
			}
			v = f.Default
		}
		converted, err := convertValue(f.Type, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", rec.FullName(), f.Name, err)
		}
		out[f.Name] = converted
	}
	return out, nil
}

var errMismatch = errors.New("value does not match type")

func convertValue(t schema.Type, v any) (any, error) {
	switch tt := t.(type) {
	case schema.Primitive:
		return convertPrimitive(tt, v)
	case schema.Logical:
		if s, ok := v.(string); ok && (tt.Name == "timestamp-millis" || tt.Name == "timestamp-micros") {
			return time.Parse(time.RFC3339Nano, s)
		}
		return convertValue(tt.Base, v)
	case schema.Enum:
		s, ok := v.(string)
		if !ok || !lo.Contains(tt.Symbols, s) {
			return nil, fmt.Errorf("%w: expected one of %v", errMismatch, tt.Symbols)
		}
		return s, nil
	case schema.Array:
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected array", errMismatch)
		}
		out := make([]any, len(items))
		for i, item := range items {
			converted, err := convertValue(tt.Items, item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	case schema.Map:
		entries, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected object", errMismatch)
		}
		out := make(map[string]any, len(entries))
		for k, entry := range entries {
			converted, err := convertValue(tt.Values, entry)
			if err != nil {
				return nil, fmt.Errorf("[%s]: %w", k, err)
			}
			out[k] = converted
		}
		return out, nil
	case schema.Record:
		fields, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected object", errMismatch)
		}
		return convertFields(tt, fields)
	case schema.Union:
		return convertUnion(tt, v)
	default:
		return nil, fmt.Errorf("unsupported type %T", t)
	}
}

// convertUnion picks the first branch the value converts to. Record branches
// are wrapped as {"full.name": value}, the Avro JSON encoding of a union.
func convertUnion(u schema.Union, v any) (any, error) {
	if v == nil {
		if lo.ContainsBy(u, isNull) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: null is not a branch", errMismatch)
	}
	for _, branch := range u {
		if isNull(branch) {
			continue
		}
		converted, err := convertValue(branch, v)
		if err != nil {
			continue
		}
		if rec, ok := branch.(schema.Record); ok {
			return map[string]any{rec.FullName(): converted}, nil
		}
		return converted, nil
	}
	return nil, fmt.Errorf("%w: no union branch accepts %v", errMismatch, v)
}

func isNull(t schema.Type) bool {
	p, ok := t.(schema.Primitive)
	return ok && p == schema.Null
}

func convertPrimitive(p schema.Primitive, v any) (any, error) {
	switch p {
	case schema.Null:
		if v != nil {
			return nil, fmt.Errorf("%w: expected null", errMismatch)
		}
		return nil, nil
	case schema.Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expected boolean", errMismatch)
		}
		return b, nil
	case schema.Int:
		n, err := asInt(v)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d is out of range for int", errMismatch, n)
		}
		return int(n), nil
	case schema.Long:
		return asInt(v)
	case schema.Float:
		f, err := asFloat(v)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case schema.Double:
		return asFloat(v)
	case schema.String:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string", errMismatch)
		}
		return s, nil
	case schema.Bytes:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string", errMismatch)
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("unsupported primitive %s", p)
	}
}

func asInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: expected integer, got %s", errMismatch, n)
		}
		return i, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%w: expected integer, got %v", errMismatch, n)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: expected integer", errMismatch)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: expected number, got %s", errMismatch, n)
		}
		return f, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected number", errMismatch)
	}
}
