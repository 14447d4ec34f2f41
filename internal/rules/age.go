package rules

import "primeadapt/internal/model"

// AgeGateRule combines age, disability and autonomy. The autonomy group is
// only consulted for the 60-69 bracket.
type AgeGateRule struct{}

func (AgeGateRule) Name() string { return "age_gate" }

func (AgeGateRule) Check(r *model.Responses) (model.Verdict, bool) {
	switch r.AgeBracket {
	case model.Age70AndUp:
		return model.Verdict{}, false
	case model.Age60To69:
		if r.DisabilityStatus == model.DisabilityYes || r.AutonomyGIR.Assessed() {
			return model.Verdict{}, false
		}
		return model.Ineligible(
			model.CodeDisabilityOrAutonomyRequired,
			"Entre 60 et 69 ans, une situation de handicap ou une perte d'autonomie évaluée (GIR 1 à 6) est requise",
		), true
	default:
		if r.DisabilityStatus == model.DisabilityYes {
			return model.Verdict{}, false
		}
		return model.Ineligible(
			model.CodeAgeOrDisabilityRequired,
			"Vous devez avoir au moins 60 ans ou être en situation de handicap",
		), true
	}
}
