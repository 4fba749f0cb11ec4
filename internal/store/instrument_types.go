package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/validator"
)

const resourceInstrumentType = "instrument_type"

// InstrumentTypes returns all types sorted by name.
func (s *Store) InstrumentTypes() []model.InstrumentType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.instrumentTypes)
}

func (s *Store) validateInstrumentType(in model.InstrumentTypeInput, create bool) error {
	if create || in.Name != nil {
		name := ""
		if in.Name != nil {
			name = *in.Name
		}
		if err := s.validate.Var("name", name, validator.TagNotBlank); err != nil {
			return apperrors.Validation("instrument type name is required")
		}
	}
	if in.CriterionID != nil && strings.TrimSpace(*in.CriterionID) != "" {
		if err := s.validate.Var("criterionId", *in.CriterionID, validator.TagNumericID); err != nil {
			return apperrors.Validation("criterion id must be a number")
		}
	}
	return nil
}

func instrumentTypePayload(in model.InstrumentTypeInput) backend.Payload {
	body := backend.Payload{}
	if in.Name != nil {
		body["nombre"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		body["descripcion"] = *in.Description
	}
	if in.CriterionID != nil {
		if id := strings.TrimSpace(*in.CriterionID); id == "" {
			body["id_criterio"] = nil
		} else {
			body["id_criterio"] = idValue(id)
		}
	}
	if in.CreatedBy != nil {
		body["user_created"] = idValue(*in.CreatedBy)
	}
	return body
}

func applyInstrumentTypeInput(t model.InstrumentType, in model.InstrumentTypeInput) model.InstrumentType {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		t.Description = model.StringPtr(*in.Description)
	}
	if in.CriterionID != nil {
		if id := strings.TrimSpace(*in.CriterionID); id == "" {
			t.CriterionID = nil
		} else {
			t.CriterionID = model.StringPtr(id)
		}
	}
	if in.CreatedBy != nil {
		t.CreatedBy = model.StringPtr(*in.CreatedBy)
	}
	return t
}

// CreateInstrumentType validates the form before calling the backend and
// propagates backend failures.
func (s *Store) CreateInstrumentType(ctx context.Context, in model.InstrumentTypeInput) (model.InstrumentType, error) {
	if err := s.validateInstrumentType(in, true); err != nil {
		return model.InstrumentType{}, err
	}

	resp, err := s.api.CreateInstrumentType(ctx, instrumentTypePayload(in))
	if err != nil {
		return model.InstrumentType{}, fmt.Errorf("failed to create instrument type: %w", err)
	}
	created := applyInstrumentTypeInput(model.InstrumentType{ID: uuid.NewString()}, in)
	if record, ok := entityRecord(resp); ok {
		created = mapper.MergeInstrumentType(created, record)
	}

	s.mu.Lock()
	s.instrumentTypes = upsert(s.instrumentTypes, created, func(t model.InstrumentType) string { return t.ID })
	sortInstrumentTypes(s.instrumentTypes)
	s.mu.Unlock()

	s.publish(ctx, resourceInstrumentType, model.OperationCreate, created.ID, false, created)
	return snapshot(created), nil
}

func (s *Store) UpdateInstrumentType(ctx context.Context, id string, in model.InstrumentTypeInput) (model.InstrumentType, error) {
	if err := s.validateInstrumentType(in, false); err != nil {
		return model.InstrumentType{}, err
	}

	s.mu.RLock()
	i := indexOf(s.instrumentTypes, func(t model.InstrumentType) bool { return t.ID == id })
	var current model.InstrumentType
	if i >= 0 {
		current = snapshot(s.instrumentTypes[i])
	}
	s.mu.RUnlock()
	if i < 0 {
		return model.InstrumentType{}, apperrors.NotFound("instrument type", nil)
	}

	updated := applyInstrumentTypeInput(current, in)
	n, remote := numericID(id)
	if remote {
		resp, err := s.api.UpdateInstrumentType(ctx, n, instrumentTypePayload(in))
		if err != nil {
			return model.InstrumentType{}, fmt.Errorf("failed to update instrument type %s: %w", id, err)
		}
		if record, ok := entityRecord(resp); ok {
			updated = mapper.MergeInstrumentType(updated, record)
			updated.ID = id
		}
	}

	s.mu.Lock()
	s.instrumentTypes = upsert(s.instrumentTypes, updated, func(t model.InstrumentType) string { return t.ID })
	sortInstrumentTypes(s.instrumentTypes)
	s.mu.Unlock()

	s.publish(ctx, resourceInstrumentType, model.OperationUpdate, id, !remote, updated)
	return snapshot(updated), nil
}

func (s *Store) DeleteInstrumentType(ctx context.Context, id string) error {
	n, remote := numericID(id)
	if remote {
		if err := s.api.DeleteInstrumentType(ctx, n); err != nil {
			return fmt.Errorf("failed to delete instrument type %s: %w", id, err)
		}
	}

	s.mu.Lock()
	s.instrumentTypes = without(s.instrumentTypes, func(t model.InstrumentType) bool { return t.ID == id })
	s.mu.Unlock()

	s.publish(ctx, resourceInstrumentType, model.OperationDelete, id, !remote, nil)
	return nil
}
