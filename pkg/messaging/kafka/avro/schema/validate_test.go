package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr string
	}{
		{
			name:   "valid",
			record: value1(),
		},
		{
			name:    "invalid name",
			record:  Record{Name: "1Value"},
			wantErr: `invalid schema name "1Value"`,
		},
		{
			name:    "invalid namespace",
			record:  Record{Name: "V", Namespace: "com..example"},
			wantErr: `invalid namespace "com..example"`,
		},
		{
			name:    "duplicate field",
			record:  Record{Name: "V", Fields: []Field{{Name: "a", Type: Int}, {Name: "a", Type: Long}}},
			wantErr: `duplicate field "a"`,
		},
		{
			name:    "missing type",
			record:  Record{Name: "V", Fields: []Field{{Name: "a"}}},
			wantErr: `field "a" has no type`,
		},
		{
			name:    "unknown primitive",
			record:  Record{Name: "V", Fields: []Field{{Name: "a", Type: Primitive("decimal")}}},
			wantErr: `unknown primitive type "decimal"`,
		},
		{
			name:    "nested union",
			record:  Record{Name: "V", Fields: []Field{{Name: "a", Type: Union{Null, Union{Int, Long}}}}},
			wantErr: "unions cannot contain unions",
		},
		{
			name:    "single branch union",
			record:  Record{Name: "V", Fields: []Field{{Name: "a", Type: Union{Int}}}},
			wantErr: "union needs at least two branches",
		},
		{
			name:    "empty enum",
			record:  Record{Name: "V", Fields: []Field{{Name: "a", Type: Enum{Name: "E"}}}},
			wantErr: "enum E has no symbols",
		},
		{
			name:    "array without items",
			record:  Record{Name: "V", Fields: []Field{{Name: "a", Type: Array{}}}},
			wantErr: "array has no item type",
		},
		{
			name: "record defined twice",
			record: Record{Name: "V", Fields: []Field{
				{Name: "a", Type: Record{Name: "Inner"}},
				{Name: "b", Type: Record{Name: "Inner"}},
			}},
			wantErr: "record Inner is defined more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecord_Canonical_RejectsInvalid(t *testing.T) {
	_, err := Record{Name: "bad-name"}.Canonical()

	assert.Error(t, err)
}
