package encoding

import (
	"fmt"
	"sync"

	hambavro "github.com/hamba/avro/v2"
)

// SchemaCache keeps parsed schemas keyed by their JSON text.
//
// Every parse gets its own named-type cache: two revisions of the same record
// name (Value1 before and after a field was added) must not see each other.
type SchemaCache struct {
	parsed sync.Map // string -> hambavro.Schema
}

func NewSchemaCache() *SchemaCache {
	return &SchemaCache{}
}

func (c *SchemaCache) Parse(schemaJSON string) (hambavro.Schema, error) {
	if cached, ok := c.parsed.Load(schemaJSON); ok {
		return cached.(hambavro.Schema), nil
	}

	parsed, err := hambavro.ParseWithCache(schemaJSON, "", &hambavro.SchemaCache{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse avro schema: %w", err)
	}

	actual, _ := c.parsed.LoadOrStore(schemaJSON, parsed)
	return actual.(hambavro.Schema), nil
}
