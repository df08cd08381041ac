package serialization

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry/rest"
)

// fakeRegistry keeps subject histories in memory and applies a reduced
// BACKWARD check: every field of a new version must exist with the same type
// in the latest version or declare a default.
type fakeRegistry struct {
	mu            sync.Mutex
	versions      map[string][]string // subject -> schemas
	ids           map[string]int      // schema -> id
	schemas       map[int]string
	compat        map[string]schemaregistry.Compatibility
	registerCalls int
	getIDCalls    int
	compatCalls   int
	delay         time.Duration
	err           error

	// When set, Register signals registerStarted and then blocks until
	// registerGate is closed.
	registerStarted chan struct{}
	registerGate    chan struct{}
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		versions: make(map[string][]string),
		ids:      make(map[string]int),
		schemas:  make(map[int]string),
		compat:   make(map[string]schemaregistry.Compatibility),
	}
}

func (f *fakeRegistry) Register(subject string, info schemaregistry.SchemaInfo, _ bool) (int, error) {
	if f.registerStarted != nil {
		f.registerStarted <- struct{}{}
	}
	if f.registerGate != nil {
		<-f.registerGate
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++

	if f.err != nil {
		return 0, f.err
	}

	history := f.versions[subject]
	for _, existing := range history {
		if existing == info.Schema {
			return f.ids[info.Schema], nil
		}
	}
	if len(history) > 0 {
		if reason := backwardIncompatibility(history[len(history)-1], info.Schema); reason != "" {
			return 0, &rest.Error{Code: 409, Message: "Schema being registered is incompatible with an earlier schema; " + reason}
		}
	}

	id, ok := f.ids[info.Schema]
	if !ok {
		id = len(f.ids) + 1
		f.ids[info.Schema] = id
		f.schemas[id] = info.Schema
	}
	f.versions[subject] = append(history, info.Schema)
	return id, nil
}

func (f *fakeRegistry) GetID(subject string, info schemaregistry.SchemaInfo, _ bool) (int, error) {
	time.Sleep(f.delay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.getIDCalls++

	if f.err != nil {
		return 0, f.err
	}
	for _, existing := range f.versions[subject] {
		if existing == info.Schema {
			return f.ids[info.Schema], nil
		}
	}
	return 0, &rest.Error{Code: 40403, Message: "Schema not found"}
}

func (f *fakeRegistry) GetBySubjectAndID(_ string, id int) (schemaregistry.SchemaInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return schemaregistry.SchemaInfo{}, f.err
	}
	s, ok := f.schemas[id]
	if !ok {
		return schemaregistry.SchemaInfo{}, &rest.Error{Code: 40403, Message: "Schema not found"}
	}
	return schemaregistry.SchemaInfo{Schema: s, SchemaType: schemaTypeAvro}, nil
}

func (f *fakeRegistry) GetSubjectsAndVersionsByID(id int) ([]schemaregistry.SubjectAndVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	var associations []schemaregistry.SubjectAndVersion
	for subject, history := range f.versions {
		for i, s := range history {
			if f.ids[s] == id {
				associations = append(associations, schemaregistry.SubjectAndVersion{Subject: subject, Version: i + 1})
			}
		}
	}
	if len(associations) == 0 {
		return nil, &rest.Error{Code: 40403, Message: "Schema not found"}
	}
	return associations, nil
}

func (f *fakeRegistry) UpdateCompatibility(subject string, update schemaregistry.Compatibility) (schemaregistry.Compatibility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compatCalls++

	f.compat[subject] = update
	return update, nil
}

func (f *fakeRegistry) calls() (register, getID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerCalls, f.getIDCalls
}

type fakeSchema struct {
	Fields []map[string]json.RawMessage `json:"fields"`
}

func backwardIncompatibility(latest, candidate string) string {
	var old, next fakeSchema
	if err := json.Unmarshal([]byte(latest), &old); err != nil {
		return err.Error()
	}
	if err := json.Unmarshal([]byte(candidate), &next); err != nil {
		return err.Error()
	}

	oldTypes := make(map[string]string, len(old.Fields))
	for _, field := range old.Fields {
		oldTypes[string(field["name"])] = string(field["type"])
	}

	for _, field := range next.Fields {
		if _, hasDefault := field["default"]; hasDefault {
			continue
		}
		name := string(field["name"])
		if oldType, ok := oldTypes[name]; !ok || oldType != string(field["type"]) {
			return fmt.Sprintf("reader field %s has no default and does not match the writer", name)
		}
	}
	return ""
}

// Values evolving under one logical name.

const testNamespace = "com.example.schemapub"

type value1 struct {
	Value string `avro:"value"`
}

func (value1) AvroSchema() schema.Record {
	return schema.Record{
		Name:      "Value1",
		Namespace: testNamespace,
		Fields:    []schema.Field{{Name: "value", Type: schema.String}},
	}
}

type newValue1 struct {
	Value    string  `avro:"value"`
	NewValue *string `avro:"newValue"`
}

func (newValue1) AvroSchema() schema.Record {
	return schema.Record{
		Name:      "NewValue1",
		Namespace: testNamespace,
		Fields: []schema.Field{
			{Name: "value", Type: schema.String},
			schema.OptionalField("newValue", schema.String),
		},
	}.WithName("Value1")
}

type breakingValue1 struct {
	NewValue int `avro:"newValue"`
}

func (breakingValue1) AvroSchema() schema.Record {
	return schema.Record{
		Name:      "BreakingValue1",
		Namespace: testNamespace,
		Fields:    []schema.Field{{Name: "newValue", Type: schema.Int}},
	}.WithName("Value1")
}

func strPtr(s string) *string { return &s }
