package mapping

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
)

// TypeMapping resolves the schema descriptor of a value. Types implementing
// schema.Describer describe themselves; types that cannot (generated or
// third-party structs) are bound explicitly, usually at startup.
type TypeMapping struct {
	mu       sync.RWMutex
	bindings map[reflect.Type]schema.Record
}

func NewTypeMapping() *TypeMapping {
	return &TypeMapping{bindings: make(map[reflect.Type]schema.Record)}
}

// Bind associates goType (or the type it points to) with rec.
func (tm *TypeMapping) Bind(goType reflect.Type, rec schema.Record) error {
	if goType == nil {
		return fmt.Errorf("goType cannot be nil")
	}
	goType = indirect(goType)
	if goType.Kind() != reflect.Struct && goType.Kind() != reflect.Map {
		return fmt.Errorf("cannot bind %s: only structs and maps can be encoded as records", goType)
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid schema for %s: %w", goType, err)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if existing, ok := tm.bindings[goType]; ok && existing.FullName() != rec.FullName() {
		return fmt.Errorf("%s is already bound to %s", goType, existing.FullName())
	}
	tm.bindings[goType] = rec
	return nil
}

// BindType is the generic form of Bind:
//
//	mapping.BindType[ordersv1.OrderPlaced](tm, orderPlacedSchema)
func BindType[T any](tm *TypeMapping, rec schema.Record) error {
	return tm.Bind(reflect.TypeFor[T](), rec)
}

// SchemaOf returns the descriptor for v.
func (tm *TypeMapping) SchemaOf(v any) (schema.Record, error) {
	if v == nil {
		return schema.Record{}, fmt.Errorf("cannot derive schema of nil value")
	}
	if d, ok := v.(schema.Describer); ok {
		return d.AvroSchema(), nil
	}

	goType := indirect(reflect.TypeOf(v))

	tm.mu.RLock()
	rec, ok := tm.bindings[goType]
	tm.mu.RUnlock()

	if !ok {
		return schema.Record{}, fmt.Errorf("no schema registered for Go type: %s", goType)
	}
	return rec, nil
}

// Len reports the number of explicit bindings.
func (tm *TypeMapping) Len() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.bindings)
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
