package answers

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
)

type fakeAnswer struct {
	id    int
	label string
	color string
}

// fakeAPI keeps one question's answers in memory and records writes.
type fakeAPI struct {
	answers []fakeAnswer
	nextID  int
	writes  []string
	failOn  string
	listErr error
}

func newFakeAPI(labels ...string) *fakeAPI {
	f := &fakeAPI{nextID: 1}
	for _, l := range labels {
		f.answers = append(f.answers, fakeAnswer{id: f.nextID, label: l, color: "#" + l})
		f.nextID++
	}
	return f
}

func (f *fakeAPI) ListAnswers(ctx context.Context, questionID string) (interface{}, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]interface{}, 0, len(f.answers))
	for _, a := range f.answers {
		out = append(out, map[string]interface{}{"id": float64(a.id), "etiqueta": a.label, "color": a.color})
	}
	return map[string]interface{}{"data": out}, nil
}

func (f *fakeAPI) CreateAnswer(ctx context.Context, questionID string, body backend.Payload) (interface{}, error) {
	label := body["etiqueta"].(string)
	if f.failOn == "create:"+label {
		return nil, &backend.Error{Status: 500, Message: "status 500"}
	}
	f.writes = append(f.writes, "create:"+label)
	a := fakeAnswer{id: f.nextID, label: label}
	f.nextID++
	f.answers = append(f.answers, a)
	return map[string]interface{}{"id": float64(a.id), "etiqueta": a.label}, nil
}

func (f *fakeAPI) UpdateAnswer(ctx context.Context, questionID, answerID string, body backend.Payload) (interface{}, error) {
	label := body["etiqueta"].(string)
	if f.failOn == "update:"+label {
		return nil, &backend.Error{Status: 500, Message: "status 500"}
	}
	f.writes = append(f.writes, "update:"+answerID+":"+label)
	for i := range f.answers {
		if strconv.Itoa(f.answers[i].id) == answerID {
			f.answers[i].label = label
		}
	}
	return map[string]interface{}{"id": answerID, "etiqueta": label}, nil
}

func (f *fakeAPI) DeleteAnswer(ctx context.Context, questionID, answerID string) error {
	if f.failOn == "delete:"+answerID {
		return &backend.Error{Status: 500, Message: "status 500"}
	}
	f.writes = append(f.writes, "delete:"+answerID)
	kept := f.answers[:0]
	for _, a := range f.answers {
		if strconv.Itoa(a.id) != answerID {
			kept = append(kept, a)
		}
	}
	f.answers = kept
	return nil
}

func (f *fakeAPI) labels() []string {
	out := make([]string, 0, len(f.answers))
	for _, a := range f.answers {
		out = append(out, a.label)
	}
	return out
}

func TestSyncRecyclesAndDeletes(t *testing.T) {
	api := newFakeAPI("Rojo", "Azul", "Verde")
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.Sync(context.Background(), "10", []string{"Azul", "Amarillo"})
	require.NoError(t, err)

	require.Len(t, summary.Kept, 1)
	assert.Equal(t, "Azul", summary.Kept[0].Label)
	require.Len(t, summary.Updated, 1)
	assert.Equal(t, "Amarillo", summary.Updated[0].Label)
	assert.Equal(t, "1", summary.Updated[0].ID, "first unmatched slot is recycled")
	require.NotNil(t, summary.Updated[0].Color)
	assert.Equal(t, "#Rojo", *summary.Updated[0].Color)
	require.Len(t, summary.Deleted, 1)
	assert.Equal(t, "Verde", summary.Deleted[0].Label)
	assert.Empty(t, summary.Created)

	assert.Equal(t, []string{"update:1:Amarillo", "delete:3"}, api.writes)
	assert.ElementsMatch(t, []string{"Azul", "Amarillo"}, api.labels())
	assert.Equal(t, []string{"Azul", "Amarillo"}, []string{summary.Answers[0].Label, summary.Answers[1].Label})
}

func TestSyncIsIdempotent(t *testing.T) {
	api := newFakeAPI("Nunca", "A veces")
	s := NewSynchronizer(api, nil, nil)
	desired := []string{"Nunca", "A veces", "Siempre"}

	first, err := s.Sync(context.Background(), "4", desired)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Writes())

	api.writes = nil
	second, err := s.Sync(context.Background(), "4", desired)
	require.NoError(t, err)
	assert.Zero(t, second.Writes())
	assert.Empty(t, api.writes)
	assert.Len(t, second.Kept, 3)
}

func TestSyncCasingChangeIssuesUpdate(t *testing.T) {
	api := newFakeAPI("si", "No")
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.Sync(context.Background(), "2", []string{"Sí", "No"})
	require.NoError(t, err)

	assert.Equal(t, []string{"update:1:Sí"}, api.writes)
	assert.Len(t, summary.Kept, 1)
}

func TestSyncEmptyDesiredDeletesAll(t *testing.T) {
	api := newFakeAPI("Uno", "Dos")
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.Sync(context.Background(), "3", []string{"  ", ""})
	require.NoError(t, err)

	assert.Len(t, summary.Deleted, 2)
	assert.Empty(t, summary.Answers)
	assert.Empty(t, api.answers)
}

func TestSyncMatchesBeforeRecycling(t *testing.T) {
	api := newFakeAPI("Azul", "Rojo")
	s := NewSynchronizer(api, nil, nil)

	_, err := s.Sync(context.Background(), "5", []string{"Amarillo", "azul"})
	require.NoError(t, err)

	// "Azul" is claimed by its match, so "Rojo" takes the new label.
	assert.Equal(t, []string{"update:2:Amarillo", "update:1:azul"}, api.writes)
}

func TestSyncDeduplicatesDesiredLabels(t *testing.T) {
	api := newFakeAPI()
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.Sync(context.Background(), "6", []string{"Bajo", "bajo ", "BÁJO", "Alto"})
	require.NoError(t, err)
	assert.Equal(t, []string{"create:Bajo", "create:Alto"}, api.writes)
	assert.Len(t, summary.Created, 2)
}

func TestSyncFailureKeepsPartialSummary(t *testing.T) {
	api := newFakeAPI("A", "B", "C")
	api.failOn = "delete:3"
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.Sync(context.Background(), "7", []string{"A", "Z"})
	require.Error(t, err)

	var be *backend.Error
	assert.True(t, errors.As(err, &be))
	assert.Len(t, summary.Updated, 1, "writes before the failure are reported")
	require.NotNil(t, summary.Failed)
	assert.Equal(t, OpDelete, summary.Failed.Operation)
	assert.Equal(t, "3", summary.Failed.AnswerID)
	assert.Equal(t, []string{"update:2:Z"}, api.writes)
}

func TestSyncListFailure(t *testing.T) {
	api := newFakeAPI()
	api.listErr = &backend.Error{Message: "backend unavailable"}
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.Sync(context.Background(), "8", []string{"A"})
	require.Error(t, err)
	require.NotNil(t, summary.Failed)
	assert.Equal(t, OpList, summary.Failed.Operation)
	assert.Empty(t, api.writes)
}

func TestSyncNewCreatesInOrder(t *testing.T) {
	api := newFakeAPI()
	s := NewSynchronizer(api, nil, nil)

	summary, err := s.SyncNew(context.Background(), "9", []string{"Poco", "Mucho", "poco"})
	require.NoError(t, err)
	assert.Equal(t, []string{"create:Poco", "create:Mucho"}, api.writes)
	assert.Len(t, summary.Answers, 2)
}

func TestSyncSkipsDeleteOfLocalAnswers(t *testing.T) {
	err := NewSynchronizer(&fakeAPI{}, nil, nil).delete(context.Background(), "1",
		answerWithID("9f7c1d56-local"))
	assert.NoError(t, err)
}

func answerWithID(id string) model.QuestionAnswer {
	return model.QuestionAnswer{ID: id, Label: "x"}
}
