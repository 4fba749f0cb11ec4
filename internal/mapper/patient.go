package mapper

import (
	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

var patientKeys = struct {
	ID, UserID, FirstName, LastName, Email, DateOfBirth, Gender, Phone []string
	Address, Therapists, ProgramID, CreatedAt, IsActive               []string
}{
	ID:          []string{"id", "id_paciente", "patientId", "patient_id", "_id"},
	UserID:      []string{"id_usuario", "user_id", "userId", "usuario.id", "user.id"},
	FirstName:   []string{"nombre", "nombres", "first_name", "firstName", "usuario.nombre", "user.firstName", "name"},
	LastName:    []string{"apellido", "apellidos", "last_name", "lastName", "usuario.apellido", "user.lastName"},
	Email:       []string{"correo", "email", "correo_electronico", "usuario.email", "usuario.correo", "user.email"},
	DateOfBirth: []string{"fecha_nacimiento", "date_of_birth", "dateOfBirth", "birthDate", "birthdate"},
	Gender:      []string{"genero", "sexo", "gender"},
	Phone:       []string{"telefono", "phone", "celular", "mobile"},
	Address:     []string{"direccion", "address", "domicilio"},
	Therapists:  []string{"terapeutas", "assigned_therapists", "assignedTherapists"},
	ProgramID:   []string{"id_programa", "program_id", "programId", "programa.id", "program.id"},
	CreatedAt:   []string{"created_at", "fecha_creacion", "createdAt", "fecha_registro"},
	IsActive:    []string{"activo", "is_active", "isActive", "estado", "active"},
}

// NormalizeGender maps English and Spanish gender labels onto the three
// canonical values.
func NormalizeGender(raw string) model.Gender {
	switch Fold(raw) {
	case "male", "m", "masculino", "hombre", "man", "varon":
		return model.GenderMale
	case "female", "f", "femenino", "mujer", "woman":
		return model.GenderFemale
	}
	return model.GenderOther
}

// Patient maps a patient record. The nested "usuario"/"user" object, when
// present, supplies identity fields the patient row lacks.
func Patient(raw map[string]interface{}) Result[model.Patient] {
	o := NewObject(raw)

	id, ok := o.ID(patientKeys.ID...)
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}

	p := model.Patient{
		ID:                 id,
		UserID:             o.OptID(patientKeys.UserID...),
		FirstName:          o.StringOr("", patientKeys.FirstName...),
		LastName:           o.StringOr("", patientKeys.LastName...),
		Email:              o.StringOr("", patientKeys.Email...),
		DateOfBirth:        o.Time(patientKeys.DateOfBirth...),
		Gender:             NormalizeGender(o.StringOr("", patientKeys.Gender...)),
		Phone:              o.OptString(patientKeys.Phone...),
		Address:            o.OptString(patientKeys.Address...),
		AssignedTherapists: o.IDList([]string{"id", "id_terapeuta", "id_usuario"}, patientKeys.Therapists...),
		ProgramID:          o.OptID(patientKeys.ProgramID...),
		CreatedAt:          o.TimeOrNow(patientKeys.CreatedAt...),
		IsActive:           o.Bool(true, patientKeys.IsActive...),
	}
	if p.FirstName == "" && p.LastName == "" {
		o.Note("nombre", "missing")
	}

	return Result[model.Patient]{Value: p, Anomalies: o.Anomalies()}
}

var patientFields = []field[model.Patient]{
	{patientKeys.ID, func(d *model.Patient, s model.Patient) { d.ID = s.ID }},
	{patientKeys.UserID, func(d *model.Patient, s model.Patient) { d.UserID = s.UserID }},
	{patientKeys.FirstName, func(d *model.Patient, s model.Patient) { d.FirstName = s.FirstName }},
	{patientKeys.LastName, func(d *model.Patient, s model.Patient) { d.LastName = s.LastName }},
	{patientKeys.Email, func(d *model.Patient, s model.Patient) { d.Email = s.Email }},
	{patientKeys.DateOfBirth, func(d *model.Patient, s model.Patient) { d.DateOfBirth = s.DateOfBirth }},
	{patientKeys.Gender, func(d *model.Patient, s model.Patient) { d.Gender = s.Gender }},
	{patientKeys.Phone, func(d *model.Patient, s model.Patient) { d.Phone = s.Phone }},
	{patientKeys.Address, func(d *model.Patient, s model.Patient) { d.Address = s.Address }},
	{patientKeys.Therapists, func(d *model.Patient, s model.Patient) { d.AssignedTherapists = s.AssignedTherapists }},
	{patientKeys.ProgramID, func(d *model.Patient, s model.Patient) { d.ProgramID = s.ProgramID }},
	{patientKeys.CreatedAt, func(d *model.Patient, s model.Patient) { d.CreatedAt = s.CreatedAt }},
	{patientKeys.IsActive, func(d *model.Patient, s model.Patient) { d.IsActive = s.IsActive }},
}

// MergePatient overlays the fields raw carries onto base.
func MergePatient(base model.Patient, raw map[string]interface{}) model.Patient {
	return overlay(base, Patient(raw).Value, NewObject(raw), patientFields)
}
