package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
)

const (
	resourceProgram  = "program"
	resourceActivity = "program_activity"
)

func (s *Store) Programs() []model.ProgramDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.programs)
}

func (s *Store) cachedProgram(id string) (model.ProgramDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.programs, func(p model.ProgramDetails) bool { return p.ID == id }); i >= 0 {
		return snapshot(s.programs[i]), true
	}
	return model.ProgramDetails{}, false
}

// Program refreshes one program with its activities, serving the cached
// copy when the backend cannot be reached.
func (s *Store) Program(ctx context.Context, id string) (model.ProgramDetails, error) {
	cached, found := s.cachedProgram(id)
	n, remote := numericID(id)
	if !remote {
		if !found {
			return model.ProgramDetails{}, apperrors.NotFound("program", nil)
		}
		return cached, nil
	}

	payload, err := s.api.GetProgram(ctx, n)
	if err != nil {
		if found {
			s.log.Warnw("program unavailable, serving cached copy", "program", id, "error", err)
			return cached, nil
		}
		return model.ProgramDetails{}, fmt.Errorf("failed to load program %s: %w", id, err)
	}
	var details model.ProgramDetails
	if found {
		details = mapper.MergeProgramDetails(cached, mapper.Record(payload))
	} else {
		details = mapper.ProgramDetails(mapper.Record(payload)).Logged(s.log, "program")
	}
	details.ID = id

	s.mu.Lock()
	s.programs = upsert(s.programs, details, func(p model.ProgramDetails) string { return p.ID })
	s.mu.Unlock()
	return snapshot(details), nil
}

// ActivitiesForDate lists the activities of a program that fall on the
// weekday of date.
func (s *Store) ActivitiesForDate(programID string, date time.Time) ([]model.ProgramActivity, error) {
	p, found := s.cachedProgram(programID)
	if !found {
		return nil, apperrors.NotFound("program", nil)
	}
	day := mapper.DayCodeForDate(date)
	out := []model.ProgramActivity{}
	for _, a := range p.Activities {
		if a.Day != nil && *a.Day == day {
			out = append(out, a)
		}
	}
	return out, nil
}

func programPayload(in model.ProgramInput) backend.Payload {
	body := backend.Payload{}
	if in.Name != nil {
		body["nombre"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		body["descripcion"] = *in.Description
	}
	if in.Instruments != nil {
		body["instrumentos"] = idValues(in.Instruments)
	}
	if in.IsActive != nil {
		body["activo"] = *in.IsActive
	}
	if in.CreatedBy != nil {
		body["user_created"] = idValue(*in.CreatedBy)
	}
	return body
}

func applyProgramInput(p model.ProgramDetails, in model.ProgramInput) model.ProgramDetails {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Instruments != nil {
		p.Instruments = append([]string{}, in.Instruments...)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.CreatedBy != nil {
		p.CreatedBy = model.StringPtr(*in.CreatedBy)
	}
	return p
}

// mapProgramResponse overlays a write response onto the locally applied
// program.
func mapProgramResponse(resp interface{}, applied model.ProgramDetails) model.ProgramDetails {
	record, ok := entityRecord(resp)
	if !ok {
		return applied
	}
	return mapper.MergeProgramDetails(applied, record)
}

func (s *Store) CreateProgram(ctx context.Context, in model.ProgramInput) (model.ProgramDetails, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return model.ProgramDetails{}, apperrors.Validation("program name is required")
	}

	resp, err := s.api.CreateProgram(ctx, programPayload(in))
	if err != nil {
		return model.ProgramDetails{}, fmt.Errorf("failed to create program: %w", err)
	}
	now := s.now()
	fallback := applyProgramInput(model.ProgramDetails{
		Program: model.Program{
			ID:          uuid.NewString(),
			Instruments: []string{},
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Activities: []model.ProgramActivity{},
	}, in)
	created := mapProgramResponse(resp, fallback)

	s.mu.Lock()
	s.programs = upsert(s.programs, created, func(p model.ProgramDetails) string { return p.ID })
	s.mu.Unlock()

	s.publish(ctx, resourceProgram, model.OperationCreate, created.ID, false, created)
	return snapshot(created), nil
}

func (s *Store) UpdateProgram(ctx context.Context, id string, in model.ProgramInput) (model.ProgramDetails, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.ProgramDetails{}, apperrors.Validation("program name is required")
	}
	current, found := s.cachedProgram(id)
	if !found {
		return model.ProgramDetails{}, apperrors.NotFound("program", nil)
	}

	updated := applyProgramInput(current, in)
	updated.UpdatedAt = s.now()
	n, remote := numericID(id)
	if remote {
		resp, err := s.api.UpdateProgram(ctx, n, programPayload(in))
		if err != nil {
			return model.ProgramDetails{}, fmt.Errorf("failed to update program %s: %w", id, err)
		}
		updated = mapProgramResponse(resp, updated)
		updated.ID = id
	}

	s.mu.Lock()
	s.programs = upsert(s.programs, updated, func(p model.ProgramDetails) string { return p.ID })
	s.mu.Unlock()

	s.publish(ctx, resourceProgram, model.OperationUpdate, id, !remote, updated)
	return snapshot(updated), nil
}

func (s *Store) DeleteProgram(ctx context.Context, id string) error {
	n, remote := numericID(id)
	if remote {
		if err := s.api.DeleteProgram(ctx, n); err != nil {
			return fmt.Errorf("failed to delete program %s: %w", id, err)
		}
	}

	s.mu.Lock()
	s.programs = without(s.programs, func(p model.ProgramDetails) bool { return p.ID == id })
	s.mu.Unlock()

	s.publish(ctx, resourceProgram, model.OperationDelete, id, !remote, nil)
	return nil
}

// activityInput is an ActivityInput with its weekday resolved.
type activityInput struct {
	model.ActivityInput
	day *model.DayCode
}

func resolveActivityInput(in model.ActivityInput, create bool) (activityInput, error) {
	out := activityInput{ActivityInput: in}
	if create && (in.Name == nil || strings.TrimSpace(*in.Name) == "") {
		return out, apperrors.Validation("activity name is required")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return out, apperrors.Validation("activity name is required")
	}
	if in.Day != nil && strings.TrimSpace(*in.Day) != "" {
		code, ok := mapper.NormalizeDayCode(*in.Day)
		if !ok {
			return out, apperrors.Validation(fmt.Sprintf("%q is not a day of the week", *in.Day))
		}
		out.day = &code
	}
	return out, nil
}

func activityPayload(in activityInput) backend.Payload {
	body := backend.Payload{}
	if in.Name != nil {
		body["nombre"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		body["descripcion"] = *in.Description
	}
	if in.Day != nil {
		if in.day != nil {
			body["dia"] = string(*in.day)
		} else {
			body["dia"] = nil
		}
	}
	if in.Time != nil {
		body["hora"] = *in.Time
	}
	if in.CreatedBy != nil {
		body["user_created"] = idValue(*in.CreatedBy)
	}
	return body
}

func applyActivityInput(a model.ProgramActivity, in activityInput) model.ProgramActivity {
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		a.Description = model.StringPtr(*in.Description)
	}
	if in.Day != nil {
		a.Day = in.day
	}
	if in.Time != nil {
		a.Time = model.StringPtr(*in.Time)
	}
	if in.CreatedBy != nil {
		a.CreatedBy = model.StringPtr(*in.CreatedBy)
	}
	return a
}

func mapActivityResponse(resp interface{}, applied model.ProgramActivity) model.ProgramActivity {
	record, ok := entityRecord(resp)
	if !ok {
		return applied
	}
	return mapper.MergeProgramActivity(applied, record)
}

func (s *Store) spliceActivity(programID string, a model.ProgramActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.programs, func(p model.ProgramDetails) bool { return p.ID == programID }); i >= 0 {
		s.programs[i].Activities = upsert(s.programs[i].Activities, a, func(a model.ProgramActivity) string { return a.ID })
	}
}

func (s *Store) CreateActivity(ctx context.Context, programID string, raw model.ActivityInput) (model.ProgramActivity, error) {
	in, err := resolveActivityInput(raw, true)
	if err != nil {
		return model.ProgramActivity{}, err
	}
	if _, found := s.cachedProgram(programID); !found {
		return model.ProgramActivity{}, apperrors.NotFound("program", nil)
	}

	now := s.now()
	created := applyActivityInput(model.ProgramActivity{ID: uuid.NewString(), CreatedAt: &now}, in)
	n, remote := numericID(programID)
	if remote {
		resp, err := s.api.CreateActivity(ctx, n, activityPayload(in))
		if err != nil {
			return model.ProgramActivity{}, fmt.Errorf("failed to create activity: %w", err)
		}
		created = mapActivityResponse(resp, created)
	}

	s.spliceActivity(programID, created)
	s.publish(ctx, resourceActivity, model.OperationCreate, created.ID, !remote, created)
	return snapshot(created), nil
}

func (s *Store) UpdateActivity(ctx context.Context, programID, activityID string, raw model.ActivityInput) (model.ProgramActivity, error) {
	in, err := resolveActivityInput(raw, false)
	if err != nil {
		return model.ProgramActivity{}, err
	}
	p, found := s.cachedProgram(programID)
	if !found {
		return model.ProgramActivity{}, apperrors.NotFound("program", nil)
	}
	i := indexOf(p.Activities, func(a model.ProgramActivity) bool { return a.ID == activityID })
	if i < 0 {
		return model.ProgramActivity{}, apperrors.NotFound("activity", nil)
	}

	now := s.now()
	updated := applyActivityInput(p.Activities[i], in)
	updated.UpdatedAt = &now
	pn, programRemote := numericID(programID)
	an, activityRemote := numericID(activityID)
	remote := programRemote && activityRemote
	if remote {
		resp, err := s.api.UpdateActivity(ctx, pn, an, activityPayload(in))
		if err != nil {
			return model.ProgramActivity{}, fmt.Errorf("failed to update activity %s: %w", activityID, err)
		}
		updated = mapActivityResponse(resp, updated)
		updated.ID = activityID
	}

	s.spliceActivity(programID, updated)
	s.publish(ctx, resourceActivity, model.OperationUpdate, activityID, !remote, updated)
	return snapshot(updated), nil
}

func (s *Store) DeleteActivity(ctx context.Context, programID, activityID string) error {
	pn, programRemote := numericID(programID)
	an, activityRemote := numericID(activityID)
	remote := programRemote && activityRemote
	if remote {
		if err := s.api.DeleteActivity(ctx, pn, an); err != nil {
			return fmt.Errorf("failed to delete activity %s: %w", activityID, err)
		}
	}

	s.mu.Lock()
	if i := indexOf(s.programs, func(p model.ProgramDetails) bool { return p.ID == programID }); i >= 0 {
		s.programs[i].Activities = without(s.programs[i].Activities, func(a model.ProgramActivity) bool { return a.ID == activityID })
	}
	s.mu.Unlock()

	s.publish(ctx, resourceActivity, model.OperationDelete, activityID, !remote, nil)
	return nil
}
