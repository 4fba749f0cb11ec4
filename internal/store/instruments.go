package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
)

const resourceInstrument = "instrument"

func (s *Store) Instruments() []model.Instrument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.instruments)
}

func (s *Store) Instrument(id string) (model.Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.instruments, func(in model.Instrument) bool { return in.ID == id }); i >= 0 {
		return snapshot(s.instruments[i]), nil
	}
	return model.Instrument{}, apperrors.NotFound("instrument", nil)
}

// GetInstrumentDetails loads an instrument with its topic name, its
// questions and every question's answers. A failed answer fetch keeps the
// answers previously known for that question. The collection is only
// touched when the result differs from the cached instrument.
func (s *Store) GetInstrumentDetails(ctx context.Context, id string) (model.Instrument, error) {
	cached, cacheErr := s.Instrument(id)
	n, remote := numericID(id)
	if !remote {
		return cached, cacheErr
	}

	payload, err := s.api.GetInstrument(ctx, n)
	if err != nil {
		if cacheErr == nil {
			s.log.Warnw("instrument details unavailable, serving cached copy", "instrument", id, "error", err)
			return cached, nil
		}
		return model.Instrument{}, fmt.Errorf("failed to load instrument %s: %w", id, err)
	}
	raw := mapper.Record(payload)

	var ov mapper.InstrumentOverrides
	if topicID, ok := mapper.TopicID(raw); ok {
		ov.TopicName = s.topicName(ctx, topicID)
	}

	questions, err := s.questionsOf(ctx, id)
	if err != nil {
		s.log.Warnw("question list unavailable, using inline questions", "instrument", id, "error", err)
	} else {
		ov.Questions = s.withAnswers(ctx, questions, cached.Questions)
	}

	var detailed model.Instrument
	if cacheErr == nil {
		detailed = mapper.MergeInstrument(cached, raw, ov)
	} else {
		detailed = mapper.Instrument(raw, ov).Logged(s.log, "instrument")
	}
	detailed.ID = id

	s.mu.Lock()
	i := indexOf(s.instruments, func(in model.Instrument) bool { return in.ID == id })
	switch {
	case i < 0:
		s.instruments = append(s.instruments, detailed)
	case !cmp.Equal(s.instruments[i], detailed):
		s.instruments[i] = detailed
	default:
		detailed = s.instruments[i]
	}
	out := snapshot(detailed)
	s.mu.Unlock()
	return out, nil
}

// questionsOf lists the global question set filtered by instrument id.
func (s *Store) questionsOf(ctx context.Context, instrumentID string) ([]model.Question, error) {
	payload, err := s.api.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	out := []model.Question{}
	for _, r := range mapper.Records(payload) {
		q := mapper.Question(r).Logged(s.log, "question")
		if q.InstrumentID != nil && *q.InstrumentID == instrumentID {
			out = append(out, q)
		}
	}
	return out, nil
}

// withAnswers fetches, in parallel, the answers of every question that came
// without inline answers.
func (s *Store) withAnswers(ctx context.Context, questions, previous []model.Question) []model.Question {
	known := make(map[string][]model.QuestionAnswer, len(previous))
	for _, q := range previous {
		known[q.ID] = q.Answers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range questions {
		if len(questions[i].Answers) > 0 {
			continue
		}
		i := i
		g.Go(func() error {
			q := questions[i]
			fetched, err := s.answers.Existing(gctx, q.ID)
			if err != nil {
				s.log.Warnw("answer fetch failed, keeping previous answers", "question", q.ID, "error", err)
				questions[i] = mapper.WithAnswers(q, known[q.ID])
				return nil
			}
			if len(fetched) > 0 {
				questions[i] = mapper.WithAnswers(q, fetched)
			}
			return nil
		})
	}
	_ = g.Wait()
	return questions
}

func instrumentPayload(in model.InstrumentInput) backend.Payload {
	body := backend.Payload{}
	if in.Name != nil {
		body["nombre"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		body["descripcion"] = *in.Description
	}
	if in.Category != nil {
		body["categoria"] = *in.Category
	}
	if in.EstimatedDuration != nil {
		body["duracion_estimada"] = *in.EstimatedDuration
	}
	if in.IsActive != nil {
		body["activo"] = *in.IsActive
	}
	if in.InstrumentTypeID != nil {
		body["id_tipo_instrumento"] = idValue(*in.InstrumentTypeID)
	}
	if in.SubjectID != nil {
		body["id_tema"] = idValue(*in.SubjectID)
	}
	if in.Availability != nil {
		body["disponibilidad"] = *in.Availability
	}
	if in.Resource != nil {
		body["recurso"] = *in.Resource
	}
	if in.ResultDelivery != nil {
		body["entrega_resultados"] = string(*in.ResultDelivery)
	}
	if in.ColorResponse != nil {
		body["color_respuesta"] = *in.ColorResponse
	}
	if in.CreatedBy != nil {
		body["user_created"] = idValue(*in.CreatedBy)
	}
	return body
}

func applyInstrumentInput(inst model.Instrument, in model.InstrumentInput) model.Instrument {
	if in.Name != nil {
		inst.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		inst.Description = *in.Description
		if strings.TrimSpace(*in.Description) != "" {
			inst.Name = *in.Description
		}
	}
	if in.Category != nil {
		inst.Category = *in.Category
	}
	if in.EstimatedDuration != nil && *in.EstimatedDuration >= 0 {
		inst.EstimatedDuration = *in.EstimatedDuration
	}
	if in.IsActive != nil {
		inst.IsActive = *in.IsActive
	}
	if in.InstrumentTypeID != nil {
		inst.InstrumentTypeID = model.StringPtr(*in.InstrumentTypeID)
	}
	if in.SubjectID != nil {
		inst.SubjectID = model.StringPtr(*in.SubjectID)
	}
	if in.Availability != nil {
		inst.Availability = model.StringPtr(*in.Availability)
	}
	if in.Resource != nil {
		inst.Resource = model.StringPtr(*in.Resource)
	}
	if in.ResultDelivery != nil {
		rd := *in.ResultDelivery
		inst.ResultDelivery = &rd
	}
	if in.ColorResponse != nil && (*in.ColorResponse == 0 || *in.ColorResponse == 1) {
		inst.ColorResponse = *in.ColorResponse
	}
	if in.CreatedBy != nil {
		inst.CreatedBy = model.StringPtr(*in.CreatedBy)
	}
	return inst
}

// mapInstrumentResponse overlays a write response onto the locally applied
// instrument, resolving the topic name it points at.
func (s *Store) mapInstrumentResponse(ctx context.Context, resp interface{}, applied model.Instrument) model.Instrument {
	record, ok := entityRecord(resp)
	if !ok {
		return applied
	}
	var ov mapper.InstrumentOverrides
	if topicID, found := mapper.TopicID(record); found {
		ov.TopicName = s.topicName(ctx, topicID)
	}
	return mapper.MergeInstrument(applied, record, ov)
}

func (s *Store) CreateInstrument(ctx context.Context, in model.InstrumentInput) (model.Instrument, error) {
	if (in.Name == nil || strings.TrimSpace(*in.Name) == "") && (in.Description == nil || strings.TrimSpace(*in.Description) == "") {
		return model.Instrument{}, apperrors.Validation("instrument name is required")
	}

	resp, err := s.api.CreateInstrument(ctx, instrumentPayload(in))
	if err != nil {
		return model.Instrument{}, fmt.Errorf("failed to create instrument: %w", err)
	}
	now := s.now()
	fallback := applyInstrumentInput(model.Instrument{
		ID:        uuid.NewString(),
		Questions: []model.Question{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	created := s.mapInstrumentResponse(ctx, resp, fallback)

	s.mu.Lock()
	s.instruments = upsert(s.instruments, created, func(i model.Instrument) string { return i.ID })
	s.mu.Unlock()

	s.publish(ctx, resourceInstrument, model.OperationCreate, created.ID, false, created)
	return snapshot(created), nil
}

func (s *Store) UpdateInstrument(ctx context.Context, id string, in model.InstrumentInput) (model.Instrument, error) {
	current, err := s.Instrument(id)
	if err != nil {
		return model.Instrument{}, err
	}

	updated := applyInstrumentInput(current, in)
	updated.UpdatedAt = s.now()
	n, remote := numericID(id)
	if remote {
		resp, err := s.api.UpdateInstrument(ctx, n, instrumentPayload(in))
		if err != nil {
			return model.Instrument{}, fmt.Errorf("failed to update instrument %s: %w", id, err)
		}
		updated = s.mapInstrumentResponse(ctx, resp, updated)
		updated.ID = id
	}

	s.mu.Lock()
	s.instruments = upsert(s.instruments, updated, func(i model.Instrument) string { return i.ID })
	s.mu.Unlock()

	s.publish(ctx, resourceInstrument, model.OperationUpdate, id, !remote, updated)
	return snapshot(updated), nil
}

func (s *Store) DeleteInstrument(ctx context.Context, id string) error {
	n, remote := numericID(id)
	if remote {
		if err := s.api.DeleteInstrument(ctx, n); err != nil {
			return fmt.Errorf("failed to delete instrument %s: %w", id, err)
		}
	}

	s.mu.Lock()
	s.instruments = without(s.instruments, func(i model.Instrument) bool { return i.ID == id })
	for p := range s.programs {
		s.programs[p].Instruments = without(s.programs[p].Instruments, func(v string) bool { return v == id })
	}
	s.mu.Unlock()

	s.publish(ctx, resourceInstrument, model.OperationDelete, id, !remote, nil)
	return nil
}
