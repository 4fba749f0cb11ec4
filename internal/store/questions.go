package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/answers"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/validator"
)

const resourceQuestion = "question"

// ValidateQuestion checks a question form. Closed question types need at
// least two distinct non-empty options.
func (s *Store) ValidateQuestion(text string, qt model.QuestionType, options []string) error {
	if err := s.validate.Var("text", text, validator.TagNotBlank); err != nil {
		return apperrors.Validation("question text is required")
	}
	if qt.IsChoice() {
		if err := s.validate.Var("options", options, validator.TagChoiceOptions); err != nil {
			return apperrors.Validation(fmt.Sprintf("%s questions need at least %d different options", qt, validator.MinChoiceOptions))
		}
	}
	return nil
}

func questionPayload(instrumentID string, in model.QuestionInput) backend.Payload {
	body := backend.Payload{}
	if instrumentID != "" {
		body["id_instrumento"] = idValue(instrumentID)
	}
	if in.Text != nil {
		body["texto"] = strings.TrimSpace(*in.Text)
	}
	if in.Type != nil {
		body["tipo"] = string(*in.Type)
	}
	if in.Required != nil {
		body["obligatoria"] = *in.Required
	}
	if in.Order != nil {
		body["orden"] = *in.Order
	}
	if in.CreatedBy != nil {
		body["user_created"] = idValue(*in.CreatedBy)
	}
	return body
}

func applyQuestionInput(q model.Question, in model.QuestionInput) model.Question {
	if in.Text != nil {
		q.Text = strings.TrimSpace(*in.Text)
	}
	if in.Type != nil {
		q.Type = mapper.NormalizeQuestionType(string(*in.Type))
	}
	if in.Required != nil {
		q.Required = *in.Required
	}
	if in.Order != nil {
		q.Order = *in.Order
	}
	return q
}

// findQuestion locates a cached question. Callers hold s.mu.
func (s *Store) findQuestion(id string) (int, int) {
	for i := range s.instruments {
		for j := range s.instruments[i].Questions {
			if s.instruments[i].Questions[j].ID == id {
				return i, j
			}
		}
	}
	return -1, -1
}

func (s *Store) Question(id string) (model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, j := s.findQuestion(id)
	if i < 0 {
		return model.Question{}, apperrors.NotFound("question", nil)
	}
	return snapshot(s.instruments[i].Questions[j]), nil
}

// spliceQuestion replaces or appends q inside its instrument.
func (s *Store) spliceQuestion(instrumentID string, q model.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.instruments, func(in model.Instrument) bool { return in.ID == instrumentID })
	if i < 0 {
		return
	}
	qs := upsert(s.instruments[i].Questions, q, func(q model.Question) string { return q.ID })
	mapper.SortQuestions(qs)
	s.instruments[i].Questions = qs
}

// CreateQuestion creates a question on an instrument and, for closed
// types, its answer options in order. If option creation fails midway the
// question is kept with the options created so far and the error returned.
func (s *Store) CreateQuestion(ctx context.Context, instrumentID string, in model.QuestionInput) (model.Question, error) {
	qt := model.QuestionTypeText
	if in.Type != nil {
		qt = mapper.NormalizeQuestionType(string(*in.Type))
		in.Type = &qt
	}
	text := ""
	if in.Text != nil {
		text = *in.Text
	}
	if err := s.ValidateQuestion(text, qt, in.Options); err != nil {
		return model.Question{}, err
	}
	if _, err := s.Instrument(instrumentID); err != nil {
		return model.Question{}, err
	}

	base := applyQuestionInput(model.Question{
		ID:           uuid.NewString(),
		InstrumentID: model.StringPtr(instrumentID),
		Type:         qt,
		Required:     true,
	}, in)

	_, remote := numericID(instrumentID)
	if !remote {
		q := base
		if qt.IsChoice() {
			q = mapper.WithAnswers(q, localAnswers(in.Options))
		}
		s.spliceQuestion(instrumentID, q)
		s.publish(ctx, resourceQuestion, model.OperationCreate, q.ID, true, q)
		return snapshot(q), nil
	}

	resp, err := s.api.CreateQuestion(ctx, questionPayload(instrumentID, in))
	if err != nil {
		return model.Question{}, fmt.Errorf("failed to create question: %w", err)
	}
	q := base
	if record, ok := entityRecord(resp); ok {
		q = mapper.MergeQuestion(q, record)
		q.InstrumentID = model.StringPtr(instrumentID)
	}

	var syncErr error
	if qt.IsChoice() {
		var summary answers.Summary
		summary, syncErr = s.answers.SyncNew(ctx, q.ID, in.Options)
		q = mapper.WithAnswers(q, summary.Answers)
		if syncErr != nil {
			syncErr = fmt.Errorf("question created but its options could not be saved: %w", syncErr)
		}
	}

	s.spliceQuestion(instrumentID, q)
	s.publish(ctx, resourceQuestion, model.OperationCreate, q.ID, false, q)
	return snapshot(q), syncErr
}

func localAnswers(labels []string) []model.QuestionAnswer {
	labels = mapper.DedupeLabels(labels)
	out := make([]model.QuestionAnswer, 0, len(labels))
	for _, l := range labels {
		out = append(out, model.QuestionAnswer{ID: uuid.NewString(), Label: l})
	}
	return out
}

// UpdateQuestion applies a partial update. When the resulting type is
// closed and options were submitted, stored answers are synchronized to
// them. Only an explicit switch to an open type removes stored answers.
func (s *Store) UpdateQuestion(ctx context.Context, id string, in model.QuestionInput) (model.Question, error) {
	current, err := s.Question(id)
	if err != nil {
		return model.Question{}, err
	}
	if in.Type != nil {
		qt := mapper.NormalizeQuestionType(string(*in.Type))
		in.Type = &qt
	}

	updated := applyQuestionInput(current, in)
	options := current.Options
	if in.Options != nil {
		options = in.Options
	}
	if err := s.ValidateQuestion(updated.Text, updated.Type, options); err != nil {
		return model.Question{}, err
	}

	instrumentID := ""
	if current.InstrumentID != nil {
		instrumentID = *current.InstrumentID
	}

	n, remote := numericID(id)
	if !remote {
		if updated.Type.IsChoice() && in.Options != nil {
			updated = mapper.WithAnswers(updated, localAnswers(in.Options))
		} else if !updated.Type.IsChoice() {
			updated = mapper.WithAnswers(updated, nil)
		}
		s.spliceQuestion(instrumentID, updated)
		s.publish(ctx, resourceQuestion, model.OperationUpdate, id, true, updated)
		return snapshot(updated), nil
	}

	resp, err := s.api.UpdateQuestion(ctx, n, questionPayload("", in))
	if err != nil {
		return model.Question{}, fmt.Errorf("failed to update question %s: %w", id, err)
	}
	// the caller's intent decides answer handling, not what the response echoes
	choice := updated.Type.IsChoice()
	if record, ok := entityRecord(resp); ok {
		updated = mapper.MergeQuestion(updated, record)
		updated.ID = id
		updated.InstrumentID = current.InstrumentID
	}

	var syncErr error
	switch {
	case choice && in.Options != nil:
		var summary answers.Summary
		summary, syncErr = s.answers.Sync(ctx, id, in.Options)
		if syncErr == nil {
			updated = mapper.WithAnswers(updated, summary.Answers)
		}
	case !choice && in.Type != nil && len(current.Answers) > 0:
		if _, syncErr = s.answers.Sync(ctx, id, nil); syncErr == nil {
			updated = mapper.WithAnswers(updated, nil)
		}
	}
	if syncErr != nil {
		syncErr = fmt.Errorf("question updated but its options could not be saved: %w", syncErr)
	}

	s.spliceQuestion(instrumentID, updated)
	s.publish(ctx, resourceQuestion, model.OperationUpdate, id, false, updated)
	return snapshot(updated), syncErr
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	n, remote := numericID(id)
	if remote {
		if err := s.api.DeleteQuestion(ctx, n); err != nil {
			return fmt.Errorf("failed to delete question %s: %w", id, err)
		}
	}

	s.mu.Lock()
	if i, _ := s.findQuestion(id); i >= 0 {
		s.instruments[i].Questions = without(s.instruments[i].Questions, func(q model.Question) bool { return q.ID == id })
	}
	s.mu.Unlock()

	s.publish(ctx, resourceQuestion, model.OperationDelete, id, !remote, nil)
	return nil
}

// SyncAnswers converges a question's stored answers onto labels. The
// summary reports the writes applied even when err is non-nil.
func (s *Store) SyncAnswers(ctx context.Context, questionID string, labels []string) (answers.Summary, error) {
	q, err := s.Question(questionID)
	if err == nil && q.Type.IsChoice() {
		if err := s.ValidateQuestion(q.Text, q.Type, labels); err != nil {
			return answers.Summary{QuestionID: questionID}, err
		}
	}

	if _, remote := numericID(questionID); !remote {
		if err != nil {
			return answers.Summary{QuestionID: questionID}, err
		}
		q = mapper.WithAnswers(q, localAnswers(labels))
		s.replaceCachedAnswers(questionID, q.Answers)
		return answers.Summary{QuestionID: questionID, Created: q.Answers, Answers: q.Answers}, nil
	}

	summary, syncErr := s.answers.Sync(ctx, questionID, labels)
	if syncErr != nil {
		return summary, fmt.Errorf("failed to synchronize answers of question %s: %w", questionID, syncErr)
	}
	s.replaceCachedAnswers(questionID, summary.Answers)
	s.publish(ctx, resourceQuestion, model.OperationUpdate, questionID, false, summary)
	return summary, nil
}

func (s *Store) replaceCachedAnswers(questionID string, list []model.QuestionAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, j := s.findQuestion(questionID); i >= 0 {
		s.instruments[i].Questions[j] = mapper.WithAnswers(s.instruments[i].Questions[j], list)
	}
}
