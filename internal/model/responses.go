package model

type YesNo string

const (
	Oui YesNo = "oui"
	Non YesNo = "non"
)

type Occupancy string

const (
	OccupancyOwner         Occupancy = "owner"
	OccupancyPrivateTenant Occupancy = "private_tenant"
	OccupancySocialTenant  Occupancy = "social_tenant"
	OccupancyOther         Occupancy = "other"
)

type AgeBracket string

const (
	AgeUnder60 AgeBracket = "under_60"
	Age60To69  AgeBracket = "60_to_69"
	Age70AndUp AgeBracket = "70_plus"
)

type Disability string

const (
	DisabilityYes     Disability = "yes"
	DisabilityNo      Disability = "no"
	DisabilityUnknown Disability = "unknown"
)

// AutonomyGIR is the outcome of an AGGIR autonomy assessment.
type AutonomyGIR string

const (
	GIR12       AutonomyGIR = "gir_1_2"
	GIR34       AutonomyGIR = "gir_3_4"
	GIR56       AutonomyGIR = "gir_5_6"
	NotAssessed AutonomyGIR = "not_assessed"
)

// Assessed reports whether the value is an actual GIR group.
func (g AutonomyGIR) Assessed() bool {
	return g == GIR12 || g == GIR34 || g == GIR56
}

type IncomeBracket string

const (
	Tranche1 IncomeBracket = "tranche_1"
	Tranche2 IncomeBracket = "tranche_2"
	Tranche3 IncomeBracket = "tranche_3"
)

type ProjectType string

const (
	ProjectWalkInShower ProjectType = "walk_in_shower"
	ProjectStairlift    ProjectType = "stairlift"
	ProjectGrabBars     ProjectType = "grab_bars"
	ProjectAccessRamps  ProjectType = "access_ramps"
	ProjectUndecided    ProjectType = "undecided"
)

const MaxHouseholdSize = 6

// Responses holds every answer captured during one wizard session.
// Zero values mean "not answered".
type Responses struct {
	ResidenceIsPrimary YesNo         `json:"residence_is_primary,omitempty"`
	OccupancyStatus    Occupancy     `json:"occupancy_status,omitempty"`
	AgeBracket         AgeBracket    `json:"age_bracket,omitempty"`
	DisabilityStatus   Disability    `json:"disability_status,omitempty"`
	AutonomyGIR        AutonomyGIR   `json:"autonomy_gir,omitempty"`
	PostalCode         string        `json:"postal_code,omitempty"`
	HouseholdSize      int           `json:"household_size,omitempty"`
	IncomeBracket      IncomeBracket `json:"income_bracket,omitempty"`
	ProjectTypes       []ProjectType `json:"project_types"`
	FirstName          string        `json:"first_name,omitempty"`
	LastName           string        `json:"last_name,omitempty"`
	Email              string        `json:"email,omitempty"`
	Phone              string        `json:"phone,omitempty"`
	Consent            bool          `json:"consent"`
}

// Clone returns a deep copy.
func (r Responses) Clone() Responses {
	out := r
	if r.ProjectTypes != nil {
		out.ProjectTypes = append([]ProjectType(nil), r.ProjectTypes...)
	}
	return out
}

// Count returns the number of answered questions.
func (r Responses) Count() int {
	n := 0
	for _, s := range []string{
		string(r.ResidenceIsPrimary), string(r.OccupancyStatus), string(r.AgeBracket),
		string(r.DisabilityStatus), string(r.AutonomyGIR), r.PostalCode,
		string(r.IncomeBracket), r.FirstName, r.LastName, r.Email, r.Phone,
	} {
		if s != "" {
			n++
		}
	}
	if r.HouseholdSize != 0 {
		n++
	}
	if len(r.ProjectTypes) > 0 {
		n++
	}
	if r.Consent {
		n++
	}
	return n
}

// HasProject reports whether p is part of the selected project set.
func (r Responses) HasProject(p ProjectType) bool {
	for _, v := range r.ProjectTypes {
		if v == p {
			return true
		}
	}
	return false
}
