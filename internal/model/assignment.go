package model

import "time"

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentCompleted AssignmentStatus = "completed"
)

// Assignment links a patient user to an instrument they must answer.
type Assignment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	InstrumentID   string           `json:"instrumentId"`
	InstrumentName string           `json:"instrumentName"`
	Status         AssignmentStatus `json:"status"`
	AssignedAt     *time.Time       `json:"assignedAt,omitempty"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty"`
}
