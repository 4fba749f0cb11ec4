package mapper

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

// InstrumentOverrides supplies values resolved outside the instrument payload.
type InstrumentOverrides struct {
	TopicName *string
	Questions []model.Question
}

// TopicID returns the topic id an instrument payload points at.
func TopicID(raw map[string]interface{}) (string, bool) {
	return NewObject(raw).ID("id_tema", "topic_id", "topicId", "tema", "topic", "subjectId")
}

// TopicName extracts the display name of a topic payload.
func TopicName(raw map[string]interface{}) (string, bool) {
	return NewObject(Record(raw)).String("nombre", "name", "descripcion", "description", "titulo", "title")
}

func normalizeResultDelivery(raw string) *model.ResultDelivery {
	var rd model.ResultDelivery
	switch Fold(raw) {
	case "sistema", "system", "automatico", "automatic", "inmediato":
		rd = model.ResultDeliverySystem
	case "programado", "programada", "scheduled", "programmed":
		rd = model.ResultDeliveryScheduled
	default:
		return nil
	}
	return &rd
}

var instrumentKeys = struct {
	ID, SubjectName, Description, Name, Duration, ColorResponse, Questions, Category []string
	IsActive, InstrumentTypeID, SubjectID, Availability, Resource, ResultDelivery   []string
}{
	ID:               []string{"id", "id_instrumento", "instrumentId", "instrument_id"},
	SubjectName:      []string{"tema.nombre", "topic.name", "nombre_tema", "topicName", "subjectName"},
	Description:      []string{"descripcion", "description"},
	Name:             []string{"descripcion", "description", "nombre", "name"},
	Duration:         []string{"duracion_estimada", "duracion", "estimated_duration", "estimatedDuration", "tiempo_estimado"},
	ColorResponse:    []string{"color_respuesta", "color_response", "colorResponse"},
	Questions:        []string{"preguntas", "questions"},
	Category:         []string{"categoria", "category", "tipo_instrumento.nombre", "instrumentType.name"},
	IsActive:         []string{"activo", "is_active", "isActive", "estado"},
	InstrumentTypeID: []string{"id_tipo_instrumento", "instrument_type_id", "instrumentTypeId", "tipo_instrumento", "instrumentType"},
	SubjectID:        []string{"id_tema", "topic_id", "topicId", "subjectId", "tema", "topic"},
	Availability:     []string{"disponibilidad", "availability"},
	Resource:         []string{"recurso", "resource"},
	ResultDelivery:   []string{"entrega_resultados", "entrega_resultado", "result_delivery", "resultDelivery"},
}

// Instrument maps an instrument payload. Name resolution falls back from
// description to name to the topic name.
func Instrument(raw map[string]interface{}, overrides ...InstrumentOverrides) Result[model.Instrument] {
	var ov InstrumentOverrides
	if len(overrides) > 0 {
		ov = overrides[0]
	}
	o := NewObject(raw)

	id, ok := o.ID(instrumentKeys.ID...)
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}

	subjectName := ov.TopicName
	if subjectName == nil {
		subjectName = o.OptString(instrumentKeys.SubjectName...)
	}

	description := o.StringOr("", instrumentKeys.Description...)
	name, ok := o.String(instrumentKeys.Name...)
	if !ok {
		if subjectName != nil {
			name = *subjectName
		} else {
			name = fmt.Sprintf("Instrumento %s", id)
			o.Note("name", "defaulted")
		}
	}

	duration := o.Int(0, instrumentKeys.Duration...)
	if duration < 0 {
		o.Note("estimatedDuration", "negative")
		duration = 0
	}

	colorResponse := 0
	if o.Bool(false, instrumentKeys.ColorResponse...) {
		colorResponse = 1
	}

	createdAt := o.TimeOrNow(timestampKeys.CreatedAt...)
	updatedAt := createdAt
	if t := o.Time(timestampKeys.UpdatedAt...); t != nil {
		updatedAt = *t
	}

	questions := ov.Questions
	if questions == nil {
		if records, found := o.Records(instrumentKeys.Questions...); found {
			questions = make([]model.Question, 0, len(records))
			for i, r := range records {
				questions = append(questions, question(o.Child(r, fmt.Sprintf("questions[%d]", i))))
			}
		}
	}
	if questions == nil {
		questions = []model.Question{}
	}
	SortQuestions(questions)

	inst := model.Instrument{
		ID:                id,
		Name:              name,
		Description:       description,
		Category:          o.StringOr("", instrumentKeys.Category...),
		Questions:         questions,
		EstimatedDuration: duration,
		IsActive:          o.Bool(true, instrumentKeys.IsActive...),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
		InstrumentTypeID:  o.OptID(instrumentKeys.InstrumentTypeID...),
		SubjectID:         o.OptID(instrumentKeys.SubjectID...),
		SubjectName:       subjectName,
		Availability:      o.OptString(instrumentKeys.Availability...),
		Resource:          o.OptString(instrumentKeys.Resource...),
		ResultDelivery:    normalizeResultDelivery(o.StringOr("", instrumentKeys.ResultDelivery...)),
		ColorResponse:     colorResponse,
		CreatedBy:         o.OptString(timestampKeys.CreatedBy...),
	}
	return Result[model.Instrument]{Value: inst, Anomalies: o.Anomalies()}
}

var instrumentFields = []field[model.Instrument]{
	{instrumentKeys.ID, func(d *model.Instrument, s model.Instrument) { d.ID = s.ID }},
	{instrumentKeys.Name, func(d *model.Instrument, s model.Instrument) { d.Name = s.Name }},
	{instrumentKeys.Description, func(d *model.Instrument, s model.Instrument) { d.Description = s.Description }},
	{instrumentKeys.Category, func(d *model.Instrument, s model.Instrument) { d.Category = s.Category }},
	{instrumentKeys.Questions, func(d *model.Instrument, s model.Instrument) { d.Questions = s.Questions }},
	{instrumentKeys.Duration, func(d *model.Instrument, s model.Instrument) { d.EstimatedDuration = s.EstimatedDuration }},
	{instrumentKeys.IsActive, func(d *model.Instrument, s model.Instrument) { d.IsActive = s.IsActive }},
	{instrumentKeys.InstrumentTypeID, func(d *model.Instrument, s model.Instrument) { d.InstrumentTypeID = s.InstrumentTypeID }},
	{instrumentKeys.SubjectID, func(d *model.Instrument, s model.Instrument) { d.SubjectID = s.SubjectID }},
	{instrumentKeys.Availability, func(d *model.Instrument, s model.Instrument) { d.Availability = s.Availability }},
	{instrumentKeys.Resource, func(d *model.Instrument, s model.Instrument) { d.Resource = s.Resource }},
	{instrumentKeys.ResultDelivery, func(d *model.Instrument, s model.Instrument) { d.ResultDelivery = s.ResultDelivery }},
	{instrumentKeys.ColorResponse, func(d *model.Instrument, s model.Instrument) { d.ColorResponse = s.ColorResponse }},
	{timestampKeys.CreatedAt, func(d *model.Instrument, s model.Instrument) { d.CreatedAt = s.CreatedAt }},
	{timestampKeys.UpdatedAt, func(d *model.Instrument, s model.Instrument) { d.UpdatedAt = s.UpdatedAt }},
	{timestampKeys.CreatedBy, func(d *model.Instrument, s model.Instrument) { d.CreatedBy = s.CreatedBy }},
}

// MergeInstrument overlays the fields raw carries onto base. Values in
// overrides always apply. A subject name that cannot be resolved keeps the
// base name, and a missing name with a resolved subject takes the subject
// name.
func MergeInstrument(base model.Instrument, raw map[string]interface{}, overrides ...InstrumentOverrides) model.Instrument {
	decoded := Instrument(raw, overrides...).Value
	merged := overlay(base, decoded, NewObject(raw), instrumentFields)
	if decoded.SubjectName != nil {
		merged.SubjectName = decoded.SubjectName
		if strings.TrimSpace(merged.Name) == "" {
			merged.Name = *decoded.SubjectName
		}
	}
	if len(overrides) > 0 && overrides[0].Questions != nil {
		merged.Questions = decoded.Questions
	}
	return merged
}
