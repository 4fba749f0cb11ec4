package mapper

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

var timestampKeys = struct {
	CreatedAt, UpdatedAt, CreatedBy []string
}{
	CreatedAt: []string{"created_at", "fecha_creacion", "createdAt"},
	UpdatedAt: []string{"updated_at", "fecha_actualizacion", "updatedAt"},
	CreatedBy: []string{"user_created", "created_by", "createdBy"},
}

var programKeys = struct {
	ID, Name, Description, Instruments, IsActive, Activities []string
}{
	ID:          []string{"id", "id_programa", "programId", "program_id"},
	Name:        []string{"nombre", "name", "titulo"},
	Description: []string{"descripcion", "description"},
	Instruments: []string{"instrumentos", "instruments", "instrument_ids"},
	IsActive:    []string{"activo", "is_active", "isActive", "estado"},
	Activities:  []string{"actividades", "activities"},
}

var activityKeys = struct {
	ID, Name, Description, Day, Time []string
}{
	ID:          []string{"id", "id_actividad", "activityId", "activity_id"},
	Name:        []string{"nombre", "name", "titulo", "title"},
	Description: []string{"descripcion", "description"},
	Day:         []string{"dia", "day", "dia_semana", "weekday"},
	Time:        []string{"hora", "time", "horario"},
}

func program(o Object) model.Program {
	id, ok := o.ID(programKeys.ID...)
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}
	name, ok := o.String(programKeys.Name...)
	if !ok {
		name = fmt.Sprintf("Programa %s", id)
		o.Note("name", "defaulted")
	}
	createdAt := o.TimeOrNow(timestampKeys.CreatedAt...)
	updatedAt := createdAt
	if t := o.Time(timestampKeys.UpdatedAt...); t != nil {
		updatedAt = *t
	}
	return model.Program{
		ID:          id,
		Name:        name,
		Description: o.StringOr("", programKeys.Description...),
		Instruments: o.IDList([]string{"id", "id_instrumento", "instrumentId"}, programKeys.Instruments...),
		IsActive:    o.Bool(true, programKeys.IsActive...),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		CreatedBy:   o.OptString(timestampKeys.CreatedBy...),
	}
}

// Program maps a program summary.
func Program(raw map[string]interface{}) Result[model.Program] {
	o := NewObject(raw)
	p := program(o)
	return Result[model.Program]{Value: p, Anomalies: o.Anomalies()}
}

// ProgramDetails maps a program together with its activities.
func ProgramDetails(raw map[string]interface{}) Result[model.ProgramDetails] {
	o := NewObject(raw)
	d := model.ProgramDetails{Program: program(o), Activities: []model.ProgramActivity{}}
	if records, found := o.Records(programKeys.Activities...); found {
		for i, r := range records {
			d.Activities = append(d.Activities, programActivity(o.Child(r, fmt.Sprintf("activities[%d]", i))))
		}
	}
	return Result[model.ProgramDetails]{Value: d, Anomalies: o.Anomalies()}
}

var programFields = []field[model.ProgramDetails]{
	{programKeys.ID, func(d *model.ProgramDetails, s model.ProgramDetails) { d.ID = s.ID }},
	{programKeys.Name, func(d *model.ProgramDetails, s model.ProgramDetails) { d.Name = s.Name }},
	{programKeys.Description, func(d *model.ProgramDetails, s model.ProgramDetails) { d.Description = s.Description }},
	{programKeys.Instruments, func(d *model.ProgramDetails, s model.ProgramDetails) { d.Instruments = s.Instruments }},
	{programKeys.IsActive, func(d *model.ProgramDetails, s model.ProgramDetails) { d.IsActive = s.IsActive }},
	{programKeys.Activities, func(d *model.ProgramDetails, s model.ProgramDetails) { d.Activities = s.Activities }},
	{timestampKeys.CreatedAt, func(d *model.ProgramDetails, s model.ProgramDetails) { d.CreatedAt = s.CreatedAt }},
	{timestampKeys.UpdatedAt, func(d *model.ProgramDetails, s model.ProgramDetails) { d.UpdatedAt = s.UpdatedAt }},
	{timestampKeys.CreatedBy, func(d *model.ProgramDetails, s model.ProgramDetails) { d.CreatedBy = s.CreatedBy }},
}

// MergeProgramDetails overlays the fields raw carries onto base. Activities
// are kept unless raw lists them.
func MergeProgramDetails(base model.ProgramDetails, raw map[string]interface{}) model.ProgramDetails {
	return overlay(base, ProgramDetails(raw).Value, NewObject(raw), programFields)
}

func programActivity(o Object) model.ProgramActivity {
	id, ok := o.ID(activityKeys.ID...)
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}
	name, ok := o.String(activityKeys.Name...)
	if !ok {
		name = fmt.Sprintf("Actividad %s", id)
		o.Note("name", "defaulted")
	}
	var day *model.DayCode
	if rawDay, found := o.String(activityKeys.Day...); found {
		if day = DayCodePtr(rawDay); day == nil {
			o.Note("day", "unrecognized weekday")
		}
	}
	return model.ProgramActivity{
		ID:          id,
		Name:        name,
		Description: o.OptString(activityKeys.Description...),
		Day:         day,
		Time:        o.OptString(activityKeys.Time...),
		CreatedAt:   o.Time(timestampKeys.CreatedAt...),
		UpdatedAt:   o.Time(timestampKeys.UpdatedAt...),
		CreatedBy:   o.OptString(timestampKeys.CreatedBy...),
	}
}

// ProgramActivity maps a single scheduled activity.
func ProgramActivity(raw map[string]interface{}) Result[model.ProgramActivity] {
	o := NewObject(raw)
	a := programActivity(o)
	return Result[model.ProgramActivity]{Value: a, Anomalies: o.Anomalies()}
}

var activityFields = []field[model.ProgramActivity]{
	{activityKeys.ID, func(d *model.ProgramActivity, s model.ProgramActivity) { d.ID = s.ID }},
	{activityKeys.Name, func(d *model.ProgramActivity, s model.ProgramActivity) { d.Name = s.Name }},
	{activityKeys.Description, func(d *model.ProgramActivity, s model.ProgramActivity) { d.Description = s.Description }},
	{activityKeys.Day, func(d *model.ProgramActivity, s model.ProgramActivity) {
		if s.Day != nil {
			d.Day = s.Day
		}
	}},
	{activityKeys.Time, func(d *model.ProgramActivity, s model.ProgramActivity) { d.Time = s.Time }},
	{timestampKeys.CreatedAt, func(d *model.ProgramActivity, s model.ProgramActivity) { d.CreatedAt = s.CreatedAt }},
	{timestampKeys.UpdatedAt, func(d *model.ProgramActivity, s model.ProgramActivity) { d.UpdatedAt = s.UpdatedAt }},
	{timestampKeys.CreatedBy, func(d *model.ProgramActivity, s model.ProgramActivity) { d.CreatedBy = s.CreatedBy }},
}

// MergeProgramActivity overlays the fields raw carries onto base. An
// unrecognized weekday keeps the base day.
func MergeProgramActivity(base model.ProgramActivity, raw map[string]interface{}) model.ProgramActivity {
	return overlay(base, ProgramActivity(raw).Value, NewObject(raw), activityFields)
}
