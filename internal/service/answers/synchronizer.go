// Package answers converges a question's stored answer options onto a
// desired list of labels with the fewest backend writes.
package answers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	"github.com/jwalitptl/practice-dashboard/pkg/metrics"
	"github.com/jwalitptl/practice-dashboard/pkg/validator"
)

// API is the slice of the backend the synchronizer writes through.
type API interface {
	ListAnswers(ctx context.Context, questionID string) (interface{}, error)
	CreateAnswer(ctx context.Context, questionID string, body backend.Payload) (interface{}, error)
	UpdateAnswer(ctx context.Context, questionID, answerID string, body backend.Payload) (interface{}, error)
	DeleteAnswer(ctx context.Context, questionID, answerID string) error
}

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpList   = "list"
)

// FailedOp describes the write that aborted a synchronization.
type FailedOp struct {
	Operation string `json:"operation"`
	AnswerID  string `json:"answerId,omitempty"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message"`
}

// Summary records what a synchronization did. When Sync fails it holds the
// writes applied before the failure.
type Summary struct {
	QuestionID string                 `json:"questionId"`
	Kept       []model.QuestionAnswer `json:"kept"`
	Created    []model.QuestionAnswer `json:"created"`
	Updated    []model.QuestionAnswer `json:"updated"`
	Deleted    []model.QuestionAnswer `json:"deleted"`
	// Answers is the resulting answer set in desired order.
	Answers []model.QuestionAnswer `json:"answers"`
	Failed  *FailedOp              `json:"failed,omitempty"`
}

// Writes is the number of backend writes issued successfully.
func (s Summary) Writes() int {
	return len(s.Created) + len(s.Updated) + len(s.Deleted)
}

type Synchronizer struct {
	api     API
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewSynchronizer(api API, log *zap.SugaredLogger, m *metrics.Metrics) *Synchronizer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Synchronizer{api: api, log: log, metrics: m}
}

// Existing fetches the answers currently stored for a question.
func (s *Synchronizer) Existing(ctx context.Context, questionID string) ([]model.QuestionAnswer, error) {
	payload, err := s.api.ListAnswers(ctx, questionID)
	s.metrics.SyncOp(OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers of question %s: %w", questionID, err)
	}
	records := mapper.Records(payload)
	out := make([]model.QuestionAnswer, 0, len(records))
	for _, r := range records {
		out = append(out, mapper.QuestionAnswer(r).Logged(s.log, "answer"))
	}
	return out, nil
}

// Sync converges the stored answers of questionID onto desired. Labels are
// de-duplicated first. Writes are issued one at a time in order: matches and
// recycled slots follow desired order, then leftovers are deleted. The first
// failed write stops the run.
func (s *Synchronizer) Sync(ctx context.Context, questionID string, desired []string) (Summary, error) {
	summary := Summary{QuestionID: questionID}
	desired = mapper.DedupeLabels(desired)

	existing, err := s.Existing(ctx, questionID)
	if err != nil {
		summary.Failed = &FailedOp{Operation: OpList, Message: err.Error()}
		return summary, err
	}

	plan := planSync(existing, desired)

	for _, step := range plan.steps {
		switch {
		case step.existing == nil:
			created, err := s.create(ctx, questionID, step.label)
			if err != nil {
				summary.Failed = &FailedOp{Operation: OpCreate, Label: step.label, Message: err.Error()}
				return summary, err
			}
			summary.Created = append(summary.Created, created)
			summary.Answers = append(summary.Answers, created)
		case strings.TrimSpace(step.existing.Label) == step.label:
			summary.Kept = append(summary.Kept, *step.existing)
			summary.Answers = append(summary.Answers, *step.existing)
		default:
			updated, err := s.update(ctx, questionID, *step.existing, step.label)
			if err != nil {
				summary.Failed = &FailedOp{Operation: OpUpdate, AnswerID: step.existing.ID, Label: step.label, Message: err.Error()}
				return summary, err
			}
			summary.Updated = append(summary.Updated, updated)
			summary.Answers = append(summary.Answers, updated)
		}
	}

	for _, leftover := range plan.leftovers {
		if err := s.delete(ctx, questionID, leftover); err != nil {
			summary.Failed = &FailedOp{Operation: OpDelete, AnswerID: leftover.ID, Label: leftover.Label, Message: err.Error()}
			return summary, err
		}
		summary.Deleted = append(summary.Deleted, leftover)
	}

	s.log.Debugw("answers synchronized",
		"question", questionID,
		"kept", len(summary.Kept),
		"created", len(summary.Created),
		"updated", len(summary.Updated),
		"deleted", len(summary.Deleted))
	return summary, nil
}

// SyncNew creates every desired label, in order, for a question that has
// no stored answers yet.
func (s *Synchronizer) SyncNew(ctx context.Context, questionID string, desired []string) (Summary, error) {
	summary := Summary{QuestionID: questionID}
	for _, label := range mapper.DedupeLabels(desired) {
		created, err := s.create(ctx, questionID, label)
		if err != nil {
			summary.Failed = &FailedOp{Operation: OpCreate, Label: label, Message: err.Error()}
			return summary, err
		}
		summary.Created = append(summary.Created, created)
		summary.Answers = append(summary.Answers, created)
	}
	return summary, nil
}

type step struct {
	label    string
	existing *model.QuestionAnswer
}

type syncPlan struct {
	steps     []step
	leftovers []model.QuestionAnswer
}

// planSync pairs every desired label with an existing answer. Folded label
// matches are claimed first so a matching answer is never recycled for
// another label; the remaining answers are then reused in stored order
// before new ones are created.
func planSync(existing []model.QuestionAnswer, desired []string) syncPlan {
	consumed := make([]bool, len(existing))
	steps := make([]step, len(desired))

	for i, label := range desired {
		steps[i].label = label
		for j := range existing {
			if !consumed[j] && mapper.EqualFold(existing[j].Label, label) {
				consumed[j] = true
				steps[i].existing = &existing[j]
				break
			}
		}
	}

	next := 0
	for i := range steps {
		if steps[i].existing != nil {
			continue
		}
		for next < len(existing) && consumed[next] {
			next++
		}
		if next < len(existing) {
			consumed[next] = true
			steps[i].existing = &existing[next]
		}
	}

	var leftovers []model.QuestionAnswer
	for j := range existing {
		if !consumed[j] {
			leftovers = append(leftovers, existing[j])
		}
	}
	return syncPlan{steps: steps, leftovers: leftovers}
}

func answerPayload(questionID, label string) backend.Payload {
	body := backend.Payload{"etiqueta": label}
	if id, err := strconv.ParseInt(questionID, 10, 64); err == nil {
		body["id_pregunta"] = id
	}
	return body
}

func (s *Synchronizer) create(ctx context.Context, questionID, label string) (model.QuestionAnswer, error) {
	resp, err := s.api.CreateAnswer(ctx, questionID, answerPayload(questionID, label))
	s.metrics.SyncOp(OpCreate, err)
	if err != nil {
		return model.QuestionAnswer{}, fmt.Errorf("failed to create answer %q: %w", label, err)
	}
	created := mapper.QuestionAnswer(mapper.Record(resp)).Logged(s.log, "answer")
	created.Label = label
	return created, nil
}

func (s *Synchronizer) update(ctx context.Context, questionID string, current model.QuestionAnswer, label string) (model.QuestionAnswer, error) {
	resp, err := s.api.UpdateAnswer(ctx, questionID, current.ID, backend.Payload{"etiqueta": label})
	s.metrics.SyncOp(OpUpdate, err)
	if err != nil {
		return model.QuestionAnswer{}, fmt.Errorf("failed to update answer %s: %w", current.ID, err)
	}

	// Value and color survive relabeling.
	updated := current
	updated.Label = label
	if record := mapper.Record(resp); len(record) > 0 {
		mapped := mapper.QuestionAnswer(record).Logged(s.log, "answer")
		if mapped.UpdatedAt != nil {
			updated.UpdatedAt = mapped.UpdatedAt
		}
	}
	return updated, nil
}

func (s *Synchronizer) delete(ctx context.Context, questionID string, answer model.QuestionAnswer) error {
	if !validator.IsNumericID(answer.ID) {
		s.log.Debugw("skipping delete of local answer", "question", questionID, "answer", answer.ID)
		return nil
	}
	err := s.api.DeleteAnswer(ctx, questionID, answer.ID)
	s.metrics.SyncOp(OpDelete, err)
	if err != nil {
		return fmt.Errorf("failed to delete answer %s: %w", answer.ID, err)
	}
	return nil
}
