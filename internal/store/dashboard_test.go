package store

import (
	"context"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

func TestLocalStatsFromCollections(t *testing.T) {
	s := newTestStore(t, unreachable(t), nil)
	s.Load(context.Background())

	stats, source := s.RefreshStats(context.Background())
	assert.Equal(t, SourceLocal, source)

	g := stats.GenderDistribution
	assert.Equal(t, 1, g.Male)
	assert.Equal(t, 2, g.Female)
	assert.Equal(t, 1, g.Other)

	sum := 0.0
	for _, b := range g.Breakdown {
		sum += b.Percentage
	}
	assert.True(t, math.Abs(sum-100) <= 0.1, "breakdown sums to %v", sum)

	require.NotEmpty(t, stats.PatientsByProgram)
	assert.Equal(t, "mock-program-1", stats.PatientsByProgram[0].ProgramID)
	assert.Equal(t, "Rehabilitación cardiaca", stats.PatientsByProgram[0].Name)
	assert.Equal(t, 2, stats.PatientsByProgram[0].Count)
}

func TestLocalStatsWithoutPatients(t *testing.T) {
	s := newTestStore(t, unreachable(t), nil)

	stats, _ := s.RefreshStats(context.Background())
	assert.Zero(t, stats.TotalPatients)
	for _, b := range stats.GenderDistribution.Breakdown {
		assert.Zero(t, b.Percentage)
	}
}

func TestAssignmentsForwardTokenAndDegrade(t *testing.T) {
	f := newFakeBackend(t)
	calls := 0
	f.mux.HandleFunc("GET /patient-instruments/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer caller", r.Header.Get("Authorization"))
		if calls > 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "id_instrumento": 5, "estado": "pendiente"},
			{"id": 2, "id_instrumento": 6, "estado": "completado"},
			{"id": 3, "id_instrumento": 7, "fecha_completado": "2024-05-01T10:00:00Z"}
		]`))
	})
	s := newTestStore(t, f.srv.URL, nil)

	list := s.Assignments(context.Background(), "55", "caller")
	assert.False(t, list.Stale)
	assert.Equal(t, 1, list.Pending)
	assert.Equal(t, 2, list.Completed)
	assert.Equal(t, "55", list.Items[0].UserID)

	again := s.Assignments(context.Background(), "55", "caller")
	assert.True(t, again.Stale)
	assert.Len(t, again.Items, 3)

	unknown := s.Assignments(context.Background(), "56", "caller")
	assert.True(t, unknown.Stale)
	assert.Empty(t, unknown.Items)
}

func TestEvolutionNewestFirst(t *testing.T) {
	events := &recordedEvents{}
	s := newTestStore(t, unreachable(t), events)
	s.Load(context.Background())

	weight := 71.5
	older := fixedNow.Add(-48 * time.Hour)
	_, err := s.AddEvolution(context.Background(), "mock-patient-1", model.EvolutionInput{WeightKg: &weight, RecordedAt: &older}, "therapist-1")
	require.NoError(t, err)
	latest, err := s.AddEvolution(context.Background(), "mock-patient-1", model.EvolutionInput{Notes: " Buena tolerancia "}, "therapist-1")
	require.NoError(t, err)
	assert.Equal(t, "Buena tolerancia", latest.Notes)

	entries, err := s.Evolution("mock-patient-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, latest.ID, entries[0].ID)
	assert.Equal(t, 71.5, *entries[1].WeightKg)

	_, err = s.AddEvolution(context.Background(), "mock-patient-1", model.EvolutionInput{}, "")
	assert.Error(t, err)
	_, err = s.AddEvolution(context.Background(), "ghost", model.EvolutionInput{Notes: "x"}, "")
	assert.Error(t, err)

	assert.Len(t, events.events, 2)
}
