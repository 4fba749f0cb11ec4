package store

import (
	"context"
	"sort"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
)

func (s *Store) Stats() model.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.stats)
}

// RefreshStats reloads the dashboard summary, computing it from the loaded
// collections when the summary endpoint fails.
func (s *Store) RefreshStats(ctx context.Context) (model.DashboardStats, string) {
	stats, err := s.fetchStats(ctx)
	source := SourceBackend

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warnw("dashboard summary unavailable, computing locally", "error", err)
		s.metrics.Fallback("stats", SourceLocal)
		stats, source = s.localStatsLocked(), SourceLocal
	}
	s.stats = stats
	return snapshot(stats), source
}

// localStatsLocked derives the dashboard numbers from the collections.
// Callers hold s.mu.
func (s *Store) localStatsLocked() model.DashboardStats {
	var male, female, other int
	users := map[string]struct{}{}
	byProgram := map[string]int{}
	for _, p := range s.patients {
		switch p.Gender {
		case model.GenderMale:
			male++
		case model.GenderFemale:
			female++
		default:
			other++
		}
		if p.UserID != nil {
			users[*p.UserID] = struct{}{}
		}
		if p.ProgramID != nil {
			byProgram[*p.ProgramID]++
		}
	}

	counts := make([]model.ProgramPatientCount, 0, len(byProgram))
	for _, prog := range s.programs {
		if n, ok := byProgram[prog.ID]; ok {
			counts = append(counts, model.ProgramPatientCount{ProgramID: prog.ID, Name: prog.Name, Count: n})
			delete(byProgram, prog.ID)
		}
	}
	for id, n := range byProgram {
		counts = append(counts, model.ProgramPatientCount{ProgramID: id, Count: n})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].ProgramID < counts[j].ProgramID
	})

	var pending, completed int
	for _, list := range s.assignments {
		for _, a := range list {
			if a.Status == model.AssignmentCompleted {
				completed++
			} else {
				pending++
			}
		}
	}

	now := s.now()
	return model.DashboardStats{
		TotalPatients:        len(s.patients),
		TotalUsers:           len(users),
		TotalInstruments:     len(s.instruments),
		PendingAssignments:   pending,
		CompletedAssignments: completed,
		GenderDistribution:   mapper.NewGenderDistribution(male, female, other),
		PatientsByProgram:    counts,
		LastUpdated:          &now,
	}
}
