package mapper

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

var instrumentTypeKeys = struct {
	ID, Name, Description, CreatedBy, CreatedAt, UpdatedAt, CriterionID []string
}{
	ID:          []string{"id", "id_tipo_instrumento", "instrumentTypeId"},
	Name:        []string{"nombre", "name", "tipo"},
	Description: []string{"descripcion", "description"},
	CreatedBy:   []string{"user_created", "created_by", "createdBy"},
	CreatedAt:   []string{"created_at", "fecha_creacion", "createdAt"},
	UpdatedAt:   []string{"updated_at", "fecha_actualizacion", "updatedAt"},
	CriterionID: []string{"id_criterio", "criterion_id", "criterionId"},
}

// InstrumentType maps an instrument type. A missing description is nil.
func InstrumentType(raw map[string]interface{}) Result[model.InstrumentType] {
	o := NewObject(raw)

	id, ok := o.ID(instrumentTypeKeys.ID...)
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}
	name, ok := o.String(instrumentTypeKeys.Name...)
	if !ok {
		name = fmt.Sprintf("Tipo %s", id)
		o.Note("name", "defaulted")
	}

	it := model.InstrumentType{
		ID:          id,
		Name:        name,
		Description: o.OptString(instrumentTypeKeys.Description...),
		CreatedBy:   o.OptString(instrumentTypeKeys.CreatedBy...),
		CreatedAt:   o.Time(instrumentTypeKeys.CreatedAt...),
		UpdatedAt:   o.Time(instrumentTypeKeys.UpdatedAt...),
		CriterionID: o.OptID(instrumentTypeKeys.CriterionID...),
	}
	return Result[model.InstrumentType]{Value: it, Anomalies: o.Anomalies()}
}

var instrumentTypeFields = []field[model.InstrumentType]{
	{instrumentTypeKeys.ID, func(d *model.InstrumentType, s model.InstrumentType) { d.ID = s.ID }},
	{instrumentTypeKeys.Name, func(d *model.InstrumentType, s model.InstrumentType) { d.Name = s.Name }},
	{instrumentTypeKeys.Description, func(d *model.InstrumentType, s model.InstrumentType) { d.Description = s.Description }},
	{instrumentTypeKeys.CreatedBy, func(d *model.InstrumentType, s model.InstrumentType) { d.CreatedBy = s.CreatedBy }},
	{instrumentTypeKeys.CreatedAt, func(d *model.InstrumentType, s model.InstrumentType) { d.CreatedAt = s.CreatedAt }},
	{instrumentTypeKeys.UpdatedAt, func(d *model.InstrumentType, s model.InstrumentType) { d.UpdatedAt = s.UpdatedAt }},
	{instrumentTypeKeys.CriterionID, func(d *model.InstrumentType, s model.InstrumentType) { d.CriterionID = s.CriterionID }},
}

// MergeInstrumentType overlays the fields raw carries onto base.
func MergeInstrumentType(base model.InstrumentType, raw map[string]interface{}) model.InstrumentType {
	return overlay(base, InstrumentType(raw).Value, NewObject(raw), instrumentTypeFields)
}
