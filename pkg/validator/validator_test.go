package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type typeForm struct {
	Name        string `json:"name" validate:"notblank"`
	CriterionID string `json:"criterionId" validate:"numericid"`
}

func TestStructRules(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(typeForm{Name: "Cuestionario", CriterionID: "12"}))

	err := v.Struct(typeForm{Name: "   ", CriterionID: "abc"})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	fields := Fields(verrs)
	assert.Equal(t, "Field must not be blank", fields["name"])
	assert.Equal(t, "Must be a numeric identifier", fields["criterionId"])
}

func TestChoiceOptions(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		options []string
		valid   bool
	}{
		{"two distinct", []string{"Sí", "No"}, true},
		{"accent duplicates", []string{"Sí", " si ", "SI"}, false},
		{"blank entries ignored", []string{"Rojo", "", "  "}, false},
		{"empty", nil, false},
		{"three", []string{"Poco", "Algo", "Mucho"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var("options", tt.options, TagChoiceOptions)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "options:")
			}
		})
	}
}

func TestIsNumericID(t *testing.T) {
	assert.True(t, IsNumericID("42"))
	assert.True(t, IsNumericID(" 7 "))
	assert.False(t, IsNumericID("local-1"))
	assert.False(t, IsNumericID("-3"))
	assert.False(t, IsNumericID(""))
	assert.False(t, IsNumericID("b5d1c9e4-9a51-4d52-8e5b-2f0d0a3f2b10"))
}
