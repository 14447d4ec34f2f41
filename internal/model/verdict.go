package model

const (
	CategoryVeryModest = "très modeste"
	CategoryModest     = "modeste"
)

const (
	CodeEligible                     = "ELIGIBLE"
	CodePrimaryResidenceRequired     = "PRIMARY_RESIDENCE_REQUIRED"
	CodeSocialHousingExcluded        = "SOCIAL_HOUSING_EXCLUDED"
	CodeAgeOrDisabilityRequired      = "AGE_OR_DISABILITY_REQUIRED"
	CodeDisabilityOrAutonomyRequired = "DISABILITY_OR_AUTONOMY_REQUIRED"
	CodeInvalidHouseholdSize         = "INVALID_HOUSEHOLD_SIZE"
	CodeInvalidIncomeBracket         = "INVALID_INCOME_BRACKET"
	CodeIncomeAboveThresholds        = "INCOME_ABOVE_THRESHOLDS"
)

// Verdict is the outcome of the eligibility cascade. AidRate and Category
// are only set when Eligible is true; Reason only when it is false.
type Verdict struct {
	Eligible bool   `json:"eligible"`
	Code     string `json:"code"`
	Reason   string `json:"reason,omitempty"`
	AidRate  *int   `json:"aid_rate,omitempty"`
	Category string `json:"category,omitempty"`
}

func Ineligible(code, reason string) Verdict {
	return Verdict{Eligible: false, Code: code, Reason: reason}
}

func Eligible(rate int, category string) Verdict {
	return Verdict{Eligible: true, Code: CodeEligible, AidRate: &rate, Category: category}
}

// Rate returns the aid rate, or 0 when ineligible.
func (v Verdict) Rate() int {
	if v.AidRate == nil {
		return 0
	}
	return *v.AidRate
}
