package permission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGroups(t *testing.T) {
	tests := []struct {
		role  string
		group Group
	}{
		{"admin", GroupAdministrator},
		{"Administrador", GroupAdministrator},
		{"therapist", GroupTherapist},
		{"Terapeuta", GroupTherapist},
		{"MÉDICO", GroupTherapist},
		{"coach", GroupTherapist},
		{" trainer ", GroupTherapist},
		{"patient", GroupPatient},
		{"Estudiante", GroupPatient},
		{"student", GroupPatient},
		{"janitor", GroupNone},
		{"", GroupNone},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.group, Resolve(tt.role).Group)
		})
	}
}

func TestAdministratorHasEverything(t *testing.T) {
	caps := Resolve("admin")
	assert.True(t, caps.IsAdministrator())
	assert.True(t, caps.HasAll(all...))
}

func TestTherapistCapabilities(t *testing.T) {
	caps := Resolve("doctor")
	assert.True(t, caps.HasAll(ManagePatients, ManageInstruments, ManagePrograms, ManageReports, ViewEvolution, ViewDashboard))
	assert.False(t, caps.Has(ManageUsers))
	assert.False(t, caps.Has(UploadFiles))
}

func TestPatientCapabilities(t *testing.T) {
	caps := Resolve("paciente")
	assert.Equal(t, []Capability{UploadFiles, ViewEvolution}, caps.List())
	assert.False(t, caps.Has(ManagePatients))
	assert.False(t, caps.Has(ViewDashboard))
}

func TestUnknownRoleHasNothing(t *testing.T) {
	caps := Resolve("guest")
	assert.Empty(t, caps.List())
	assert.False(t, caps.Has(ViewEvolution))

	var zero Capabilities
	assert.False(t, zero.Has(ViewDashboard))
	assert.Empty(t, zero.List())
}

func TestCapabilitiesJSON(t *testing.T) {
	data, err := json.Marshal(Resolve("Terapeuta"))
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "therapist", out["group"])
	assert.Equal(t, true, out["canManagePatients"])
	assert.Equal(t, false, out["canUploadFiles"])
}
