package mapper

import (
	"math"
	"time"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

var genderLabels = map[model.Gender]string{
	model.GenderMale:   "Masculino",
	model.GenderFemale: "Femenino",
	model.GenderOther:  "Otro",
}

// GenderBreakdown computes per-gender percentages rounded to one decimal.
// When total > 0 the percentages sum to 100; otherwise every entry is zero.
func GenderBreakdown(male, female, other int) []model.GenderBreakdown {
	counts := []struct {
		gender model.Gender
		count  int
	}{
		{model.GenderMale, male},
		{model.GenderFemale, female},
		{model.GenderOther, other},
	}

	total := 0
	for _, c := range counts {
		if c.count > 0 {
			total += c.count
		}
	}

	out := make([]model.GenderBreakdown, len(counts))
	largest, sum := 0, 0.0
	for i, c := range counts {
		count := c.count
		if count < 0 {
			count = 0
		}
		out[i] = model.GenderBreakdown{Label: genderLabels[c.gender], Count: count}
		if total == 0 {
			continue
		}
		out[i].Percentage = math.Round(float64(count)*1000/float64(total)) / 10
		sum += out[i].Percentage
		if count > out[largest].Count {
			largest = i
		}
	}
	if total > 0 {
		// rounding drift goes to the largest bucket
		out[largest].Percentage = math.Round((out[largest].Percentage+100-sum)*10) / 10
	}
	return out
}

// NewGenderDistribution builds a distribution with its breakdown.
func NewGenderDistribution(male, female, other int) model.GenderDistribution {
	return model.GenderDistribution{
		Male:      male,
		Female:    female,
		Other:     other,
		Breakdown: GenderBreakdown(male, female, other),
	}
}

// DashboardStats maps the dashboard summary endpoint.
func DashboardStats(raw map[string]interface{}) Result[model.DashboardStats] {
	o := NewObject(Record(raw))

	g, _ := o.Object("patientGenderDistribution", "distribucion_genero", "genderDistribution", "genero")
	dist := NewGenderDistribution(
		g.Int(0, "male", "masculino", "M", "hombres"),
		g.Int(0, "female", "femenino", "F", "mujeres"),
		g.Int(0, "other", "otro", "otros", "O"),
	)

	stats := model.DashboardStats{
		TotalPatients:        o.Int(0, "totalPatients", "total_pacientes", "pacientes"),
		TotalUsers:           o.Int(0, "totalUsers", "total_usuarios", "usuarios"),
		TotalInstruments:     o.Int(0, "totalInstruments", "total_instrumentos", "instrumentos"),
		PendingAssignments:   o.Int(0, "pendingAssignments", "asignaciones_pendientes", "pendientes"),
		CompletedAssignments: o.Int(0, "completedAssignments", "asignaciones_completadas", "completadas"),
		GenderDistribution:   dist,
		PatientsByProgram:    []model.ProgramPatientCount{},
		LastUpdated:          o.Time("lastUpdated", "ultima_actualizacion", "updated_at"),
	}

	if records, found := o.Records("patientsByProgram", "pacientes_por_programa"); found {
		for _, r := range records {
			row := o.Child(r, "patientsByProgram")
			stats.PatientsByProgram = append(stats.PatientsByProgram, model.ProgramPatientCount{
				ProgramID: row.StringOr("", "programId", "id_programa", "id"),
				Name:      row.StringOr("", "name", "nombre", "programa"),
				Count:     row.Int(0, "count", "total", "cantidad"),
			})
		}
	}
	if stats.LastUpdated == nil {
		now := time.Now()
		stats.LastUpdated = &now
	}
	return Result[model.DashboardStats]{Value: stats, Anomalies: o.Anomalies()}
}
