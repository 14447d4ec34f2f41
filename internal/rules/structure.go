package rules

import (
	"primeadapt/internal/model"
	"primeadapt/internal/validate"
)

// StructureRule re-checks the inputs captured at steps 5 and 6.
type StructureRule struct{}

func (StructureRule) Name() string { return "structure" }

func (StructureRule) Check(r *model.Responses) (model.Verdict, bool) {
	if !validate.PostalCode(r.PostalCode).OK {
		return model.Ineligible(model.CodeInvalidPostalCode, "Code postal invalide"), true
	}
	if r.HouseholdSize < 1 || r.HouseholdSize > model.MaxHouseholdSize {
		return model.Ineligible(model.CodeInvalidHouseholdSize, "Taille de foyer invalide"), true
	}
	if !validate.IncomeBracket(r.IncomeBracket) {
		return model.Ineligible(model.CodeInvalidIncomeBracket, "Tranche de revenus invalide"), true
	}
	return model.Verdict{}, false
}
