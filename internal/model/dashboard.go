package model

import "time"

type GenderBreakdown struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type GenderDistribution struct {
	Male      int               `json:"male"`
	Female    int               `json:"female"`
	Other     int               `json:"other"`
	Breakdown []GenderBreakdown `json:"breakdown"`
}

func (g GenderDistribution) Total() int {
	return g.Male + g.Female + g.Other
}

type ProgramPatientCount struct {
	ProgramID string `json:"programId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type DashboardStats struct {
	TotalPatients        int                   `json:"totalPatients"`
	TotalUsers           int                   `json:"totalUsers"`
	TotalInstruments     int                   `json:"totalInstruments"`
	PendingAssignments   int                   `json:"pendingAssignments"`
	CompletedAssignments int                   `json:"completedAssignments"`
	GenderDistribution   GenderDistribution    `json:"genderDistribution"`
	PatientsByProgram    []ProgramPatientCount `json:"patientsByProgram"`
	LastUpdated          *time.Time            `json:"lastUpdated,omitempty"`
}
