package mapping

import (
	"reflect"
	"testing"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type describedValue struct {
	Value string `avro:"value"`
}

func (describedValue) AvroSchema() schema.Record {
	return schema.Record{Name: "Described", Namespace: "test", Fields: []schema.Field{{Name: "value", Type: schema.String}}}
}

type plainValue struct {
	ID string `avro:"id"`
}

var plainSchema = schema.Record{Name: "Plain", Namespace: "test", Fields: []schema.Field{{Name: "id", Type: schema.String}}}

func TestTypeMapping_SchemaOf_Describer(t *testing.T) {
	tm := NewTypeMapping()

	rec, err := tm.SchemaOf(describedValue{Value: "v"})
	require.NoError(t, err)
	assert.Equal(t, "test.Described", rec.FullName())

	rec, err = tm.SchemaOf(&describedValue{})
	require.NoError(t, err)
	assert.Equal(t, "test.Described", rec.FullName())
}

func TestTypeMapping_SchemaOf_Bound(t *testing.T) {
	// Arrange
	tm := NewTypeMapping()
	require.NoError(t, BindType[plainValue](tm, plainSchema))

	// Act
	byValue, errValue := tm.SchemaOf(plainValue{})
	byPointer, errPointer := tm.SchemaOf(&plainValue{})

	// Assert
	require.NoError(t, errValue)
	require.NoError(t, errPointer)
	assert.Equal(t, plainSchema, byValue)
	assert.Equal(t, plainSchema, byPointer)
	assert.Equal(t, 1, tm.Len())
}

func TestTypeMapping_SchemaOf_NotFound(t *testing.T) {
	tm := NewTypeMapping()

	_, err := tm.SchemaOf(plainValue{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema registered for Go type")
}

func TestTypeMapping_SchemaOf_Nil(t *testing.T) {
	_, err := NewTypeMapping().SchemaOf(nil)

	assert.Error(t, err)
}

func TestTypeMapping_Bind_Errors(t *testing.T) {
	tests := []struct {
		name    string
		goType  reflect.Type
		rec     schema.Record
		wantErr string
	}{
		{name: "nil type", goType: nil, rec: plainSchema, wantErr: "goType cannot be nil"},
		{name: "not a struct", goType: reflect.TypeFor[string](), rec: plainSchema, wantErr: "only structs and maps"},
		{name: "invalid schema", goType: reflect.TypeFor[plainValue](), rec: schema.Record{Name: "bad name"}, wantErr: "invalid schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTypeMapping().Bind(tt.goType, tt.rec)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTypeMapping_Bind_ConflictingName(t *testing.T) {
	// Arrange
	tm := NewTypeMapping()
	require.NoError(t, BindType[plainValue](tm, plainSchema))

	// Act
	sameName := tm.Bind(reflect.TypeFor[*plainValue](), plainSchema)
	otherName := BindType[plainValue](tm, plainSchema.WithName("Other"))

	// Assert
	assert.NoError(t, sameName)
	require.Error(t, otherName)
	assert.Contains(t, otherName.Error(), "already bound to test.Plain")
}
