package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
)

const resourcePatient = "patient"

// Patients returns one window of the patients matching filters and the
// number of matches.
func (s *Store) Patients(filters model.PatientFilters) ([]model.Patient, int) {
	w := filters.Window.Normalize()
	query := mapper.Fold(filters.Search)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		if query == "" || patientMatches(p, query) {
			matches = append(matches, p)
		}
	}
	total := len(matches)
	if w.Offset >= total {
		return []model.Patient{}, total
	}
	end := w.Offset + w.Limit
	if end > total {
		end = total
	}
	return snapshot(matches[w.Offset:end]), total
}

func patientMatches(p model.Patient, query string) bool {
	return strings.Contains(mapper.Fold(p.FullName()), query) ||
		strings.Contains(mapper.Fold(p.Email), query)
}

func (s *Store) Patient(id string) (model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return snapshot(p), nil
		}
	}
	return model.Patient{}, apperrors.NotFound("patient", nil)
}

func patientPayload(in model.PatientInput) backend.Payload {
	body := backend.Payload{}
	if in.FirstName != nil {
		body["nombre"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		body["apellido"] = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		body["correo"] = strings.TrimSpace(*in.Email)
	}
	if in.DateOfBirth != nil {
		body["fecha_nacimiento"] = in.DateOfBirth.Format("2006-01-02")
	}
	if in.Gender != nil {
		body["genero"] = string(*in.Gender)
	}
	if in.Phone != nil {
		body["telefono"] = *in.Phone
	}
	if in.Address != nil {
		body["direccion"] = *in.Address
	}
	if in.UserID != nil {
		body["id_usuario"] = idValue(*in.UserID)
	}
	if in.ProgramID != nil {
		body["id_programa"] = idValue(*in.ProgramID)
	}
	if in.AssignedTherapists != nil {
		body["terapeutas"] = idValues(in.AssignedTherapists)
	}
	if in.IsActive != nil {
		body["activo"] = *in.IsActive
	}
	return body
}

// applyPatientInput overlays the fields present in in.
func applyPatientInput(p model.Patient, in model.PatientInput) model.Patient {
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		p.Email = strings.TrimSpace(*in.Email)
	}
	if in.DateOfBirth != nil {
		dob := *in.DateOfBirth
		p.DateOfBirth = &dob
	}
	if in.Gender != nil {
		p.Gender = mapper.NormalizeGender(string(*in.Gender))
	}
	if in.Phone != nil {
		p.Phone = model.StringPtr(*in.Phone)
	}
	if in.Address != nil {
		p.Address = model.StringPtr(*in.Address)
	}
	if in.UserID != nil {
		p.UserID = model.StringPtr(*in.UserID)
	}
	if in.ProgramID != nil {
		p.ProgramID = model.StringPtr(*in.ProgramID)
	}
	if in.AssignedTherapists != nil {
		p.AssignedTherapists = append([]string{}, in.AssignedTherapists...)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p
}

// localPatient synthesizes a patient the backend never confirmed.
func (s *Store) localPatient(in model.PatientInput) model.Patient {
	now := s.now()
	p := model.Patient{
		ID:                 strconv.FormatInt(now.UnixMilli(), 10),
		Gender:             model.GenderOther,
		AssignedTherapists: []string{},
		CreatedAt:          now,
		IsActive:           true,
	}
	return applyPatientInput(p, in)
}

// CreatePatient creates a patient. When the backend rejects or cannot be
// reached the attempted patient is still added locally, so it never fails.
func (s *Store) CreatePatient(ctx context.Context, in model.PatientInput) (model.Patient, error) {
	var created model.Patient
	local := false

	resp, err := s.api.CreatePatient(ctx, patientPayload(in))
	if err != nil {
		s.log.Warnw("patient create failed, keeping local copy", "error", err)
		s.metrics.Fallback(resourcePatient, SourceLocal)
		created, local = s.localPatient(in), true
	} else {
		created = s.localPatient(in)
		if record, ok := entityRecord(resp); ok {
			created = mapper.MergePatient(created, record)
		}
	}

	s.mu.Lock()
	s.patients = upsert(s.patients, created, func(p model.Patient) string { return p.ID })
	s.mu.Unlock()

	s.publish(ctx, resourcePatient, model.OperationCreate, created.ID, local, created)
	return snapshot(created), nil
}

// UpdatePatient applies a partial update. Backend failures and local-only
// ids are absorbed into a local update.
func (s *Store) UpdatePatient(ctx context.Context, id string, in model.PatientInput) (model.Patient, error) {
	s.mu.RLock()
	i := indexOf(s.patients, func(p model.Patient) bool { return p.ID == id })
	var current model.Patient
	if i >= 0 {
		current = snapshot(s.patients[i])
	}
	s.mu.RUnlock()
	if i < 0 {
		current = s.localPatient(model.PatientInput{})
		current.ID = id
	}

	updated := applyPatientInput(current, in)
	local := true
	if n, ok := numericID(id); ok {
		resp, err := s.api.UpdatePatient(ctx, n, patientPayload(in))
		if err != nil {
			s.log.Warnw("patient update failed, applying locally", "patient", id, "error", err)
			s.metrics.Fallback(resourcePatient, SourceLocal)
		} else {
			local = false
			if record, ok := entityRecord(resp); ok {
				updated = mapper.MergePatient(updated, record)
				updated.ID = id
			}
		}
	}

	s.mu.Lock()
	s.patients = upsert(s.patients, updated, func(p model.Patient) string { return p.ID })
	s.mu.Unlock()

	s.publish(ctx, resourcePatient, model.OperationUpdate, id, local, updated)
	return snapshot(updated), nil
}

// DeletePatient removes a patient. It is removed locally even when the
// backend delete fails.
func (s *Store) DeletePatient(ctx context.Context, id string) error {
	local := true
	if n, ok := numericID(id); ok {
		if err := s.api.DeletePatient(ctx, n); err != nil {
			s.log.Warnw("patient delete failed, removing locally", "patient", id, "error", err)
			s.metrics.Fallback(resourcePatient, SourceLocal)
		} else {
			local = false
		}
	}

	s.mu.Lock()
	s.patients = without(s.patients, func(p model.Patient) bool { return p.ID == id })
	delete(s.evolution, id)
	s.mu.Unlock()

	s.publish(ctx, resourcePatient, model.OperationDelete, id, local, nil)
	return nil
}
