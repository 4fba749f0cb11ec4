package model

import "time"

// EvolutionEntry is one vitals/progress observation for a patient.
type EvolutionEntry struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patientId"`
	RecordedAt    time.Time `json:"recordedAt"`
	WeightKg      *float64  `json:"weightKg,omitempty"`
	HeartRate     *int      `json:"heartRate,omitempty"`
	BloodPressure *string   `json:"bloodPressure,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    *string   `json:"recordedBy,omitempty"`
}

type EvolutionInput struct {
	RecordedAt    *time.Time `json:"recordedAt"`
	WeightKg      *float64   `json:"weightKg" binding:"omitempty,gt=0,lt=500"`
	HeartRate     *int       `json:"heartRate" binding:"omitempty,gt=0,lt=300"`
	BloodPressure *string    `json:"bloodPressure"`
	Notes         string     `json:"notes" binding:"max=2000"`
}
