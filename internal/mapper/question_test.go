package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

func TestNormalizeQuestionType(t *testing.T) {
	cases := map[string]model.QuestionType{
		"Opción Múltiple":   model.QuestionTypeMultipleChoice,
		"multiple_choice":   model.QuestionTypeMultipleChoice,
		"RADIO":             model.QuestionTypeRadio,
		"selección única":   model.QuestionTypeRadio,
		"Lista desplegable": model.QuestionTypeSelect,
		"Sí/No":             model.QuestionTypeBoolean,
		"likert":            model.QuestionTypeScale,
		"escala  numérica":  model.QuestionTypeScale,
		"abierta":           model.QuestionTypeText,
		"something else":    model.QuestionTypeText,
		"":                  model.QuestionTypeText,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeQuestionType(in), in)
	}
}

func TestQuestionDefaults(t *testing.T) {
	q := Question(map[string]interface{}{"id": 7.0}).Value
	assert.Equal(t, "7", q.ID)
	assert.Equal(t, "Pregunta 7", q.Text)
	assert.Equal(t, model.QuestionTypeText, q.Type)
	assert.True(t, q.Required)

	q = Question(map[string]interface{}{"id": "8", "texto": "¿Cómo dormiste?", "obligatoria": 0.0}).Value
	assert.False(t, q.Required)
	q = Question(map[string]interface{}{"id": "9", "required": "false"}).Value
	assert.False(t, q.Required)
}

func TestQuestionOptionsDerivedFromAnswers(t *testing.T) {
	res := Question(map[string]interface{}{
		"id":       "1",
		"texto":    "Color favorito",
		"tipo":     "radio",
		"opciones": []interface{}{"Uno", "Dos"},
		"respuestas": []interface{}{
			map[string]interface{}{"id": 10.0, "etiqueta": "Rojo", "color": "#f00"},
			map[string]interface{}{"valor": "2"},
		},
	})
	q := res.Value
	require.Len(t, q.Answers, 2)
	assert.Equal(t, "10", q.Answers[0].ID)
	assert.NotEmpty(t, q.Answers[1].ID)
	assert.Equal(t, "Respuesta "+q.Answers[1].ID, q.Answers[1].Label)
	assert.Equal(t, []string{"Rojo", q.Answers[1].Label}, q.Options)
	assert.NotEmpty(t, res.Anomalies)

	q = Question(map[string]interface{}{"id": "2", "opciones": []interface{}{"Uno", "Dos"}}).Value
	assert.Equal(t, []string{"Uno", "Dos"}, q.Options)
}

func TestSortQuestions(t *testing.T) {
	qs := []model.Question{
		{ID: "b", Order: 2},
		{ID: "c", Order: 1},
		{ID: "a", Order: 2},
	}
	SortQuestions(qs)
	assert.Equal(t, "c", qs[0].ID)
	assert.Equal(t, "a", qs[1].ID)
	assert.Equal(t, "b", qs[2].ID)
}
