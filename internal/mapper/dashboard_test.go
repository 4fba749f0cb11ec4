package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenderBreakdownSumsToHundred(t *testing.T) {
	for _, c := range [][3]int{{1, 1, 1}, {2, 1, 0}, {7, 13, 3}, {0, 0, 5}, {1, 2, 4}, {333, 333, 334}} {
		breakdown := GenderBreakdown(c[0], c[1], c[2])
		require.Len(t, breakdown, 3)
		sum := 0.0
		for _, b := range breakdown {
			sum += b.Percentage
		}
		assert.InDelta(t, 100, sum, 0.1, "%v", c)
	}
}

func TestGenderBreakdownZeroTotal(t *testing.T) {
	for _, b := range GenderBreakdown(0, 0, 0) {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percentage)
	}
}

func TestDashboardStatsMapping(t *testing.T) {
	stats := DashboardStats(map[string]interface{}{
		"data": map[string]interface{}{
			"totalPatients":             10.0,
			"total_instrumentos":        "4",
			"patientGenderDistribution": map[string]interface{}{"male": 6.0, "female": 4.0},
			"patientsByProgram": []interface{}{
				map[string]interface{}{"programId": 1.0, "name": "Rehab", "count": 3.0},
			},
		},
	}).Value
	assert.Equal(t, 10, stats.TotalPatients)
	assert.Equal(t, 4, stats.TotalInstruments)
	assert.Equal(t, 6, stats.GenderDistribution.Male)
	assert.Equal(t, 60.0, stats.GenderDistribution.Breakdown[0].Percentage)
	require.Len(t, stats.PatientsByProgram, 1)
	assert.Equal(t, "1", stats.PatientsByProgram[0].ProgramID)
	assert.NotNil(t, stats.LastUpdated)
}
