package store

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
)

const resourceEvolution = "evolution"

// Evolution returns a patient's entries, newest first.
func (s *Store) Evolution(patientID string) ([]model.EvolutionEntry, error) {
	if _, err := s.Patient(patientID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := snapshot(s.evolution[patientID])
	if entries == nil {
		entries = []model.EvolutionEntry{}
	}
	return entries, nil
}

// AddEvolution records an observation for a patient. Entries live only in
// this store.
func (s *Store) AddEvolution(ctx context.Context, patientID string, in model.EvolutionInput, recordedBy string) (model.EvolutionEntry, error) {
	if _, err := s.Patient(patientID); err != nil {
		return model.EvolutionEntry{}, err
	}
	if in.WeightKg == nil && in.HeartRate == nil && in.BloodPressure == nil && strings.TrimSpace(in.Notes) == "" {
		return model.EvolutionEntry{}, apperrors.Validation("an evolution entry needs at least one measurement or a note")
	}

	entry := model.EvolutionEntry{
		ID:            uuid.NewString(),
		PatientID:     patientID,
		RecordedAt:    s.now(),
		WeightKg:      in.WeightKg,
		HeartRate:     in.HeartRate,
		BloodPressure: in.BloodPressure,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if in.RecordedAt != nil && !in.RecordedAt.IsZero() {
		entry.RecordedAt = *in.RecordedAt
	}
	if recordedBy != "" {
		entry.RecordedBy = model.StringPtr(recordedBy)
	}

	s.mu.Lock()
	entries := append(s.evolution[patientID], entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})
	s.evolution[patientID] = entries
	out := snapshot(entry)
	s.mu.Unlock()

	s.publish(ctx, resourceEvolution, model.OperationCreate, entry.ID, true, out)
	return out, nil
}
