package store

import (
	"context"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
	"github.com/jwalitptl/practice-dashboard/internal/model"
)

// AssignmentList is the instruments assigned to one patient user.
type AssignmentList struct {
	UserID    string             `json:"userId"`
	Items     []model.Assignment `json:"items"`
	Pending   int                `json:"pending"`
	Completed int                `json:"completed"`
	// Stale is set when the backend could not be reached and the last
	// known list is served.
	Stale bool `json:"stale"`
}

// Assignments fetches a user's assignments with the caller's bearer token.
// Failures degrade to the last list fetched for that user.
func (s *Store) Assignments(ctx context.Context, userID, token string) AssignmentList {
	list := AssignmentList{UserID: userID}

	payload, err := s.api.PatientInstruments(ctx, userID, token)
	if err != nil {
		s.log.Warnw("assignments unavailable, serving last known list", "user", userID, "error", err)
		s.metrics.Fallback("assignments", SourceLocal)
		s.mu.RLock()
		list.Items = snapshot(s.assignments[userID])
		s.mu.RUnlock()
		list.Stale = true
	} else {
		records := mapper.Records(payload)
		list.Items = make([]model.Assignment, 0, len(records))
		for _, r := range records {
			a := mapper.Assignment(r).Logged(s.log, "assignment")
			if a.UserID == "" {
				a.UserID = userID
			}
			list.Items = append(list.Items, a)
		}
		s.mu.Lock()
		s.assignments[userID] = snapshot(list.Items)
		s.mu.Unlock()
	}

	if list.Items == nil {
		list.Items = []model.Assignment{}
	}
	for _, a := range list.Items {
		if a.Status == model.AssignmentCompleted {
			list.Completed++
		} else {
			list.Pending++
		}
	}
	return list
}
