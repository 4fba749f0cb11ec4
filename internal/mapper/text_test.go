package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "opcion multiple", Fold("  Opción   MÚLTIPLE "))
	assert.True(t, EqualFold("Sí", "si"))
	assert.False(t, EqualFold("Rojo", "Roja"))
}

func TestDedupeLabels(t *testing.T) {
	got := DedupeLabels([]string{" Rojo", "rojo", "", "Azúl", "azul", "  ", "Verde"})
	assert.Equal(t, []string{"Rojo", "Azúl", "Verde"}, got)
}

func TestParseBool(t *testing.T) {
	for _, v := range []interface{}{true, 1.0, "1", "true", "Sí", "activo", "YES"} {
		b, known := ParseBool(v)
		assert.True(t, known, v)
		assert.True(t, b, v)
	}
	for _, v := range []interface{}{false, 0.0, "0", "false", "no", "Inactivo"} {
		b, known := ParseBool(v)
		assert.True(t, known, v)
		assert.False(t, b, v)
	}
	_, known := ParseBool("maybe")
	assert.False(t, known)
}
