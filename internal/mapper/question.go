package mapper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

var questionTypeSynonyms = map[model.QuestionType][]string{
	model.QuestionTypeText: {
		"text", "texto", "texto libre", "free text", "open", "abierta", "pregunta abierta",
		"respuesta abierta", "short text", "long text", "textarea", "string", "parrafo",
	},
	model.QuestionTypeBoolean: {
		"boolean", "bool", "booleano", "booleana", "si/no", "si no", "yes/no", "yes no",
		"true/false", "verdadero/falso", "binary", "binaria", "binario",
	},
	model.QuestionTypeMultipleChoice: {
		"multiple choice", "multiple", "multiple choices", "opcion multiple", "opciones multiples",
		"seleccion multiple", "checkbox", "checkboxes", "multiselect", "multi select", "varias opciones",
	},
	model.QuestionTypeRadio: {
		"radio", "radio button", "radios", "opcion unica", "seleccion unica", "single choice",
		"unica", "una opcion",
	},
	model.QuestionTypeSelect: {
		"select", "dropdown", "drop down", "lista", "lista desplegable", "desplegable", "combo",
		"combobox", "seleccion",
	},
	model.QuestionTypeScale: {
		"scale", "escala", "likert", "rating", "rango", "range", "slider", "numeric scale",
		"escala numerica", "puntuacion",
	},
}

var questionTypeIndex = func() map[string]model.QuestionType {
	idx := make(map[string]model.QuestionType)
	for qt, synonyms := range questionTypeSynonyms {
		for _, s := range synonyms {
			idx[canonicalQuestionType(s)] = qt
		}
	}
	return idx
}()

func canonicalQuestionType(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return Fold(s)
}

// NormalizeQuestionType maps a free-form type name onto one of the six
// question types, defaulting to text.
func NormalizeQuestionType(raw string) model.QuestionType {
	if qt, ok := questionTypeIndex[canonicalQuestionType(raw)]; ok {
		return qt
	}
	return model.QuestionTypeText
}

var answerLabelKeys = []string{"etiqueta", "texto", "respuesta", "label", "text", "nombre", "descripcion", "value", "valor"}

// QuestionAnswer maps a stored answer option.
func QuestionAnswer(raw map[string]interface{}) Result[model.QuestionAnswer] {
	o := NewObject(raw)
	a := questionAnswer(o)
	return Result[model.QuestionAnswer]{Value: a, Anomalies: o.Anomalies()}
}

func questionAnswer(o Object) model.QuestionAnswer {
	id, ok := o.ID("id", "id_respuesta", "answerId", "answer_id")
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}
	label, ok := o.String("etiqueta", "texto", "respuesta", "label", "text", "nombre", "descripcion")
	if !ok {
		label = fmt.Sprintf("Respuesta %s", id)
		o.Note("label", "defaulted")
	}
	return model.QuestionAnswer{
		ID:        id,
		Label:     label,
		Value:     o.OptString("valor", "value", "puntaje", "score"),
		Color:     o.OptString("color", "colour"),
		CreatedBy: o.OptString("user_created", "created_by", "createdBy"),
		CreatedAt: o.Time("created_at", "fecha_creacion", "createdAt"),
		UpdatedAt: o.Time("updated_at", "fecha_actualizacion", "updatedAt"),
	}
}

// Question maps a question with its inline answers.
func Question(raw map[string]interface{}) Result[model.Question] {
	o := NewObject(raw)
	q := question(o)
	return Result[model.Question]{Value: q, Anomalies: o.Anomalies()}
}

var questionKeys = struct {
	ID, InstrumentID, Text, Type, Required, Order, Answers, Options []string
}{
	ID:           []string{"id", "id_pregunta", "questionId", "question_id"},
	InstrumentID: []string{"id_instrumento", "instrument_id", "instrumentId"},
	Text:         []string{"texto", "pregunta", "enunciado", "text", "question", "descripcion", "nombre"},
	Type:         []string{"tipo", "tipo_pregunta", "type", "question_type", "questionType"},
	Required:     []string{"obligatoria", "obligatorio", "requerida", "required", "is_required", "isRequired"},
	Order:        []string{"orden", "order", "posicion", "position"},
	Answers:      []string{"respuestas", "answers", "opciones_respuesta"},
	Options:      []string{"opciones", "options"},
}

func question(o Object) model.Question {
	id, ok := o.ID(questionKeys.ID...)
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}
	text, ok := o.String(questionKeys.Text...)
	if !ok {
		text = fmt.Sprintf("Pregunta %s", id)
		o.Note("text", "defaulted")
	}

	q := model.Question{
		ID:           id,
		InstrumentID: o.OptID(questionKeys.InstrumentID...),
		Text:         text,
		Type:         NormalizeQuestionType(o.StringOr("", questionKeys.Type...)),
		Required:     o.Bool(true, questionKeys.Required...),
		Order:        o.Int(0, questionKeys.Order...),
	}

	if records, found := o.Records(questionKeys.Answers...); found {
		for i, r := range records {
			q.Answers = append(q.Answers, questionAnswer(o.Child(r, fmt.Sprintf("answers[%d]", i))))
		}
	}
	q.Options = o.Labels(answerLabelKeys, questionKeys.Options...)
	q.Options = EffectiveOptions(q)
	return q
}

var questionFields = []field[model.Question]{
	{questionKeys.ID, func(d *model.Question, s model.Question) { d.ID = s.ID }},
	{questionKeys.InstrumentID, func(d *model.Question, s model.Question) { d.InstrumentID = s.InstrumentID }},
	{questionKeys.Text, func(d *model.Question, s model.Question) { d.Text = s.Text }},
	{questionKeys.Type, func(d *model.Question, s model.Question) { d.Type = s.Type }},
	{questionKeys.Required, func(d *model.Question, s model.Question) { d.Required = s.Required }},
	{questionKeys.Order, func(d *model.Question, s model.Question) { d.Order = s.Order }},
	{questionKeys.Answers, func(d *model.Question, s model.Question) { d.Answers = s.Answers }},
	{questionKeys.Options, func(d *model.Question, s model.Question) { d.Options = s.Options }},
}

// MergeQuestion overlays the fields raw carries onto base. Options are
// recomputed from the merged answers.
func MergeQuestion(base model.Question, raw map[string]interface{}) model.Question {
	q := overlay(base, question(NewObject(raw)), NewObject(raw), questionFields)
	return WithAnswers(q, q.Answers)
}

// EffectiveOptions derives a question's option labels: answer labels when
// any answer exists, otherwise its raw options.
func EffectiveOptions(q model.Question) []string {
	if len(q.Answers) > 0 {
		labels := make([]string, 0, len(q.Answers))
		for _, a := range q.Answers {
			labels = append(labels, a.Label)
		}
		return labels
	}
	return q.Options
}

// WithAnswers replaces a question's answers and recomputes its options.
func WithAnswers(q model.Question, answers []model.QuestionAnswer) model.Question {
	q.Answers = answers
	if len(answers) == 0 {
		q.Answers = nil
	}
	q.Options = EffectiveOptions(q)
	return q
}

// SortQuestions orders questions by Order, breaking ties by id.
func SortQuestions(questions []model.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].ID < questions[j].ID
	})
}
