package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/practice-dashboard/internal/model"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
)

func questionByID(t *testing.T, qs []model.Question, id string) model.Question {
	t.Helper()
	for _, q := range qs {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("question %s not found", id)
	return model.Question{}
}

func TestGetInstrumentDetailsIsolatesAnswerFailures(t *testing.T) {
	f := newFakeBackend(t)
	f.json("GET /instruments", http.StatusOK, []interface{}{
		map[string]interface{}{"id": 5, "nombre": "Estado de ánimo", "preguntas": []interface{}{
			map[string]interface{}{"id": 12, "texto": "¿Durmió bien?", "tipo": "radio", "respuestas": []interface{}{
				map[string]interface{}{"id": 120, "etiqueta": "Sí"},
				map[string]interface{}{"id": 121, "etiqueta": "No"},
			}},
		}},
	})
	f.json("GET /instruments/{id}", http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"id": 5, "nombre": "Estado de ánimo", "id_tema": 2},
	})
	f.json("GET /topics/{id}", http.StatusOK, map[string]interface{}{"nombre": "Ánimo"})
	f.json("GET /questions", http.StatusOK, []interface{}{
		map[string]interface{}{"id": 11, "id_instrumento": 5, "texto": "¿Cómo se siente?", "tipo": "Opción única", "orden": 1},
		map[string]interface{}{"id": 12, "id_instrumento": 5, "texto": "¿Durmió bien?", "tipo": "radio", "orden": 2},
		map[string]interface{}{"id": 13, "id_instrumento": 5, "texto": "Comentarios", "tipo": "texto libre", "orden": 3},
		map[string]interface{}{"id": 99, "id_instrumento": 6, "texto": "Otra"},
	})
	f.json("GET /questions/11/answers", http.StatusOK, []interface{}{
		map[string]interface{}{"id": 110, "etiqueta": "Bien"},
		map[string]interface{}{"id": 111, "etiqueta": "Mal"},
	})
	f.json("GET /questions/12/answers", http.StatusInternalServerError, map[string]interface{}{"message": "boom"})
	f.json("GET /questions/13/answers", http.StatusOK, []interface{}{})

	s := newTestStore(t, f.srv.URL, nil)
	s.Load(context.Background())

	inst, err := s.GetInstrumentDetails(context.Background(), "5")
	require.NoError(t, err)

	require.Len(t, inst.Questions, 3)
	assert.Equal(t, []string{"11", "12", "13"}, []string{inst.Questions[0].ID, inst.Questions[1].ID, inst.Questions[2].ID})
	assert.Equal(t, model.QuestionTypeRadio, inst.Questions[0].Type)
	assert.Equal(t, []string{"Bien", "Mal"}, questionByID(t, inst.Questions, "11").Options)
	assert.Equal(t, []string{"Sí", "No"}, questionByID(t, inst.Questions, "12").Options, "failed fetch keeps previous answers")
	assert.Empty(t, questionByID(t, inst.Questions, "13").Answers)
	require.NotNil(t, inst.SubjectName)
	assert.Equal(t, "Ánimo", *inst.SubjectName)

	cached, err := s.Instrument("5")
	require.NoError(t, err)
	assert.Len(t, cached.Questions, 3)
}

func TestGetInstrumentDetailsServesCacheWhenUnavailable(t *testing.T) {
	s := newTestStore(t, unreachable(t), nil)
	s.Load(context.Background())
	s.instruments = append(s.instruments, model.Instrument{ID: "77", Name: "Cached"})

	inst, err := s.GetInstrumentDetails(context.Background(), "77")
	require.NoError(t, err)
	assert.Equal(t, "Cached", inst.Name)

	_, err = s.GetInstrumentDetails(context.Background(), "78")
	assert.Error(t, err)

	inst, err = s.GetInstrumentDetails(context.Background(), "mock-instrument-1")
	require.NoError(t, err)
	assert.Len(t, inst.Questions, 2)
}

func TestQuestionFormValidation(t *testing.T) {
	s := newTestStore(t, unreachable(t), nil)
	s.Load(context.Background())

	radio := model.QuestionTypeRadio
	tests := []struct {
		name    string
		options []string
		valid   bool
	}{
		{"duplicates ignoring case and accents", []string{"Sí", "si", " SI "}, false},
		{"single option", []string{"Sí", ""}, false},
		{"two options", []string{"Sí", "No"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateQuestion(context.Background(), "mock-instrument-1", model.QuestionInput{
				Text:    strPtr("¿Hizo ejercicio?"),
				Type:    &radio,
				Options: tt.options,
			})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrValidation, appErr.Code)
		})
	}

	text := model.QuestionTypeText
	_, err := s.CreateQuestion(context.Background(), "mock-instrument-1", model.QuestionInput{Text: strPtr("Notas"), Type: &text})
	assert.NoError(t, err, "open questions need no options")
}

func TestCreateQuestionCreatesAnswersInOrder(t *testing.T) {
	f := newFakeBackend(t)
	f.json("GET /instruments", http.StatusOK, []interface{}{map[string]interface{}{"id": 5, "nombre": "PHQ-9"}})
	f.json("POST /questions", http.StatusCreated, map[string]interface{}{"id": 40, "texto": "¿Con qué frecuencia?", "tipo": "select", "id_instrumento": 5})

	var created []string
	f.mux.HandleFunc("POST /questions/{id}/answers", func(w http.ResponseWriter, r *http.Request) {
		created = append(created, r.PathValue("id"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 400}`))
	})
	s := newTestStore(t, f.srv.URL, nil)
	s.Load(context.Background())

	sel := model.QuestionTypeSelect
	q, err := s.CreateQuestion(context.Background(), "5", model.QuestionInput{
		Text:    strPtr("¿Con qué frecuencia?"),
		Type:    &sel,
		Options: []string{"Nunca", "A veces", "nunca"},
	})
	require.NoError(t, err)

	assert.Equal(t, "40", q.ID)
	assert.Equal(t, []string{"Nunca", "A veces"}, q.Options)
	assert.Equal(t, []string{"40", "40"}, created)

	inst, _ := s.Instrument("5")
	require.Len(t, inst.Questions, 1)
	assert.Equal(t, "40", inst.Questions[0].ID)
}

func TestSyncAnswersOnLocalQuestion(t *testing.T) {
	s := newTestStore(t, unreachable(t), nil)
	s.Load(context.Background())

	summary, err := s.SyncAnswers(context.Background(), "mock-question-1", []string{"Leve", "Fuerte"})
	require.NoError(t, err)
	assert.Len(t, summary.Answers, 2)

	q, err := s.Question("mock-question-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Leve", "Fuerte"}, q.Options)

	_, err = s.SyncAnswers(context.Background(), "mock-question-1", []string{"Solo"})
	assert.Error(t, err)
}

func TestDeleteQuestionRemovesFromInstrument(t *testing.T) {
	s := newTestStore(t, unreachable(t), nil)
	s.Load(context.Background())

	require.NoError(t, s.DeleteQuestion(context.Background(), "mock-question-2"))
	inst, err := s.Instrument("mock-instrument-1")
	require.NoError(t, err)
	assert.Len(t, inst.Questions, 1)
}
