package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reflect-registry/reflection"
)

func TestConstName(t *testing.T) {
	tests := []struct {
		typeName string
		key      reflection.Key
		expected string
	}{
		{"Struct", "field", "StructField"},
		{"Tuple", "0", "TupleF0"},
		{"Tuple", "12", "TupleF12"},
		{"Enum", "Named@field", "EnumNamedField"},
		{"Enum", "Tuple@0", "EnumTupleF0"},
		{"Meta", "labels", "MetaLabels"},
		{"Meta", "created_at", "MetaCreatedAt"},
		{"Order", "ID", "OrderID"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstName(tt.typeName, tt.key))
		})
	}
}

func TestRegistryName(t *testing.T) {
	assert.Equal(t, "structRegistry", RegistryName("Struct"))
	assert.Equal(t, "bRegistry", RegistryName("B"))
	assert.Equal(t, "urlSetRegistry", RegistryName("URLSet"))
	assert.Equal(t, "idRegistry", RegistryName("ID"))
}

func TestReceiverName(t *testing.T) {
	assert.Equal(t, "s", ReceiverName("Struct"))
	assert.Equal(t, "h", ReceiverName("Hierarchy"))
	assert.Equal(t, "v", ReceiverName(""))
}
