package rules

import "primeadapt/internal/model"

type PrimaryResidenceRule struct{}

func (PrimaryResidenceRule) Name() string { return "primary_residence" }

func (PrimaryResidenceRule) Check(r *model.Responses) (model.Verdict, bool) {
	if r.ResidenceIsPrimary == model.Non {
		return model.Ineligible(
			model.CodePrimaryResidenceRequired,
			"Le projet ne concerne pas votre résidence principale",
		), true
	}
	return model.Verdict{}, false
}
