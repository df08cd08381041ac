package encoding

import "github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"

type value1 struct {
	NewValue int `avro:"newValue"`
}

func (value1) AvroSchema() schema.Record {
	return schema.Record{
		Name:      "Value1",
		Namespace: "com.example.schemapub",
		Fields:    []schema.Field{{Name: "newValue", Type: schema.Int}},
	}
}

type newValue1 struct {
	NewValue int     `avro:"newValue"`
	Label    *string `avro:"label"`
}

func (newValue1) AvroSchema() schema.Record {
	return schema.Record{
		Name:      "Value1",
		Namespace: "com.example.schemapub",
		Fields: []schema.Field{
			{Name: "newValue", Type: schema.Int},
			schema.OptionalField("label", schema.String),
		},
	}
}

type product struct {
	ID    string  `avro:"id"`
	Name  string  `avro:"name"`
	Price float64 `avro:"price"`
}

var productSchema = schema.Record{
	Name:      "Product",
	Namespace: "test",
	Fields: []schema.Field{
		{Name: "id", Type: schema.String},
		{Name: "name", Type: schema.String},
		{Name: "price", Type: schema.Double},
	},
}

func strPtr(s string) *string { return &s }
