// Package permission resolves what an authenticated role may do.
package permission

import (
	"encoding/json"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
)

type Capability string

const (
	ManagePatients    Capability = "manage_patients"
	ManageInstruments Capability = "manage_instruments"
	ManagePrograms    Capability = "manage_programs"
	ManageReports     Capability = "manage_reports"
	ViewDashboard     Capability = "view_dashboard"
	ViewEvolution     Capability = "view_evolution"
	UploadFiles       Capability = "upload_files"
	ManageUsers       Capability = "manage_users"
	ManageSettings    Capability = "manage_settings"
)

// Group is the family a role belongs to.
type Group string

const (
	GroupAdministrator Group = "administrator"
	GroupTherapist     Group = "therapist"
	GroupPatient       Group = "patient"
	GroupNone          Group = "none"
)

var all = []Capability{
	ManagePatients, ManageInstruments, ManagePrograms, ManageReports,
	ViewDashboard, ViewEvolution, UploadFiles, ManageUsers, ManageSettings,
}

var grants = map[Group][]Capability{
	GroupAdministrator: all,
	GroupTherapist: {
		ManagePatients, ManageInstruments, ManagePrograms, ManageReports,
		ViewDashboard, ViewEvolution,
	},
	GroupPatient: {ViewEvolution, UploadFiles},
}

// roleGroups is keyed by folded role name.
var roleGroups = map[string]Group{
	"admin":          GroupAdministrator,
	"administrator":  GroupAdministrator,
	"administrador":  GroupAdministrator,
	"administradora": GroupAdministrator,
	"superadmin":     GroupAdministrator,

	"trainer":     GroupTherapist,
	"entrenador":  GroupTherapist,
	"entrenadora": GroupTherapist,
	"therapist":   GroupTherapist,
	"terapeuta":   GroupTherapist,
	"doctor":      GroupTherapist,
	"doctora":     GroupTherapist,
	"medico":      GroupTherapist,
	"medica":      GroupTherapist,
	"coach":       GroupTherapist,

	"patient":    GroupPatient,
	"paciente":   GroupPatient,
	"student":    GroupPatient,
	"estudiante": GroupPatient,
	"alumno":     GroupPatient,
	"alumna":     GroupPatient,
}

// Capabilities is the resolved permission record of one role.
type Capabilities struct {
	Role  string
	Group Group
	set   mapset.Set[Capability]
}

// Resolve maps a role name to its capabilities. Matching ignores case and
// accents. Unknown roles get no capabilities.
func Resolve(role string) Capabilities {
	group, ok := roleGroups[mapper.Fold(role)]
	if !ok {
		group = GroupNone
	}
	return Capabilities{
		Role:  role,
		Group: group,
		set:   mapset.NewThreadUnsafeSet(grants[group]...),
	}
}

func (c Capabilities) Has(capability Capability) bool {
	return c.set != nil && c.set.Contains(capability)
}

// HasAll reports whether every capability is granted.
func (c Capabilities) HasAll(capabilities ...Capability) bool {
	if c.set == nil {
		return len(capabilities) == 0
	}
	return c.set.Contains(capabilities...)
}

func (c Capabilities) IsAdministrator() bool {
	return c.Group == GroupAdministrator
}

// List returns the granted capabilities sorted by name.
func (c Capabilities) List() []Capability {
	if c.set == nil {
		return []Capability{}
	}
	out := c.set.ToSlice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type capabilitiesJSON struct {
	Role         string       `json:"role"`
	Group        Group        `json:"group"`
	Capabilities []Capability `json:"capabilities"`

	CanManagePatients    bool `json:"canManagePatients"`
	CanManageInstruments bool `json:"canManageInstruments"`
	CanManagePrograms    bool `json:"canManagePrograms"`
	CanManageReports     bool `json:"canManageReports"`
	CanViewDashboard     bool `json:"canViewDashboard"`
	CanViewEvolution     bool `json:"canViewEvolution"`
	CanUploadFiles       bool `json:"canUploadFiles"`
}

func (c Capabilities) MarshalJSON() ([]byte, error) {
	return json.Marshal(capabilitiesJSON{
		Role:                 c.Role,
		Group:                c.Group,
		Capabilities:         c.List(),
		CanManagePatients:    c.Has(ManagePatients),
		CanManageInstruments: c.Has(ManageInstruments),
		CanManagePrograms:    c.Has(ManagePrograms),
		CanManageReports:     c.Has(ManageReports),
		CanViewDashboard:     c.Has(ViewDashboard),
		CanViewEvolution:     c.Has(ViewEvolution),
		CanUploadFiles:       c.Has(UploadFiles),
	})
}
