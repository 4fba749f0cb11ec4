// Package store is the single in-memory state of the dashboard. It loads
// collections from the clinical backend, applies mutations through it and
// serves deep-copied snapshots to readers.
package store

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mohae/deepcopy"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/answers"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	"github.com/jwalitptl/practice-dashboard/pkg/metrics"
	"github.com/jwalitptl/practice-dashboard/pkg/validator"
)

// Backend is the clinical REST surface the store reads and writes through.
type Backend interface {
	answers.API

	ListPatients(ctx context.Context) (interface{}, error)
	CreatePatient(ctx context.Context, body backend.Payload) (interface{}, error)
	UpdatePatient(ctx context.Context, id int64, body backend.Payload) (interface{}, error)
	DeletePatient(ctx context.Context, id int64) error

	ListPrograms(ctx context.Context) (interface{}, error)
	GetProgram(ctx context.Context, id int64) (interface{}, error)
	CreateProgram(ctx context.Context, body backend.Payload) (interface{}, error)
	UpdateProgram(ctx context.Context, id int64, body backend.Payload) (interface{}, error)
	DeleteProgram(ctx context.Context, id int64) error
	CreateActivity(ctx context.Context, programID int64, body backend.Payload) (interface{}, error)
	UpdateActivity(ctx context.Context, programID, activityID int64, body backend.Payload) (interface{}, error)
	DeleteActivity(ctx context.Context, programID, activityID int64) error

	ListInstruments(ctx context.Context) (interface{}, error)
	GetInstrument(ctx context.Context, id int64) (interface{}, error)
	CreateInstrument(ctx context.Context, body backend.Payload) (interface{}, error)
	UpdateInstrument(ctx context.Context, id int64, body backend.Payload) (interface{}, error)
	DeleteInstrument(ctx context.Context, id int64) error

	ListInstrumentTypes(ctx context.Context) (interface{}, error)
	CreateInstrumentType(ctx context.Context, body backend.Payload) (interface{}, error)
	UpdateInstrumentType(ctx context.Context, id int64, body backend.Payload) (interface{}, error)
	DeleteInstrumentType(ctx context.Context, id int64) error

	GetTopic(ctx context.Context, id string) (interface{}, error)

	ListQuestions(ctx context.Context) (interface{}, error)
	CreateQuestion(ctx context.Context, body backend.Payload) (interface{}, error)
	UpdateQuestion(ctx context.Context, id int64, body backend.Payload) (interface{}, error)
	DeleteQuestion(ctx context.Context, id int64) error

	DashboardSummary(ctx context.Context) (interface{}, error)
	PatientInstruments(ctx context.Context, userID, token string) (interface{}, error)
}

// Publisher receives a change event after every applied mutation.
type Publisher interface {
	PublishChange(ctx context.Context, event model.ChangeEvent) error
}

type Options struct {
	TopicTTL time.Duration
	Metrics  *metrics.Metrics
	Events   Publisher
	// Now overrides the clock used for synthesized timestamps.
	Now func() time.Time
}

type Store struct {
	api      Backend
	answers  *answers.Synchronizer
	log      *zap.SugaredLogger
	metrics  *metrics.Metrics
	events   Publisher
	topics   *cache.Cache
	validate *validator.Validator
	now      func() time.Time

	mu              sync.RWMutex
	patients        []model.Patient
	instruments     []model.Instrument
	programs        []model.ProgramDetails
	instrumentTypes []model.InstrumentType
	assignments     map[string][]model.Assignment
	evolution       map[string][]model.EvolutionEntry
	stats           model.DashboardStats
	loadedAt        time.Time
}

func New(api Backend, log *zap.SugaredLogger, opts Options) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.TopicTTL <= 0 {
		opts.TopicTTL = 10 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		api:             api,
		answers:         answers.NewSynchronizer(api, log.Named("answers"), opts.Metrics),
		log:             log,
		metrics:         opts.Metrics,
		events:          opts.Events,
		topics:          cache.New(opts.TopicTTL, 2*opts.TopicTTL),
		validate:        validator.New(),
		now:             opts.Now,
		patients:        []model.Patient{},
		instruments:     []model.Instrument{},
		programs:        []model.ProgramDetails{},
		instrumentTypes: []model.InstrumentType{},
		assignments:     map[string][]model.Assignment{},
		evolution:       map[string][]model.EvolutionEntry{},
	}
}

// LoadedAt is the time of the last completed bootstrap.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func snapshot[T any](v T) T {
	return deepcopy.Copy(v).(T)
}

// numericID parses a backend row id. Ids that do not parse belong to
// entities that only exist locally.
func numericID(id string) (int64, bool) {
	id = strings.TrimSpace(id)
	if !validator.IsNumericID(id) {
		return 0, false
	}
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil
}

// idValue sends numeric foreign keys as numbers.
func idValue(id string) interface{} {
	if n, ok := numericID(id); ok {
		return n
	}
	return id
}

func idValues(ids []string) []interface{} {
	out := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		out = append(out, idValue(id))
	}
	return out
}

func (s *Store) publish(ctx context.Context, resource, operation, id string, local bool, payload interface{}) {
	if s.events == nil {
		return
	}
	err := s.events.PublishChange(ctx, model.ChangeEvent{
		Resource:   resource,
		Operation:  operation,
		ID:         id,
		Local:      local,
		OccurredAt: s.now(),
		Payload:    payload,
	})
	s.metrics.EventPublished(resource, err)
	if err != nil {
		s.log.Warnw("failed to publish change event", "resource", resource, "id", id, "error", err)
	}
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i := range items {
		if match(items[i]) {
			return i
		}
	}
	return -1
}

// upsert replaces the item with the same id or appends it.
func upsert[T any](items []T, item T, id func(T) string) []T {
	if i := indexOf(items, func(v T) bool { return id(v) == id(item) }); i >= 0 {
		items[i] = item
		return items
	}
	return append(items, item)
}

func without[T any](items []T, drop func(T) bool) []T {
	out := items[:0]
	for _, v := range items {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

func newCollator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
}

var entityIDKeys = []string{
	"id", "_id", "id_paciente", "id_programa", "id_actividad", "id_instrumento",
	"id_tipo_instrumento", "id_pregunta", "id_respuesta",
}

// entityRecord unwraps a write response and reports whether it carries an
// entity rather than an acknowledgement.
func entityRecord(resp interface{}) (map[string]interface{}, bool) {
	record := mapper.Record(resp)
	_, _, ok := mapper.NewObject(record).Lookup(entityIDKeys...)
	return record, ok
}
