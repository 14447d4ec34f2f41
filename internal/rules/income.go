package rules

import "primeadapt/internal/model"

const (
	RateVeryModest = 70
	RateModest     = 50
)

// IncomeRule always decides: the bracket alone fixes the aid rate.
type IncomeRule struct{}

func (IncomeRule) Name() string { return "income" }

func (IncomeRule) Check(r *model.Responses) (model.Verdict, bool) {
	switch r.IncomeBracket {
	case model.Tranche1:
		return model.Eligible(RateVeryModest, model.CategoryVeryModest), true
	case model.Tranche2:
		return model.Eligible(RateModest, model.CategoryModest), true
	case model.Tranche3:
		return model.Ineligible(
			model.CodeIncomeAboveThresholds,
			"Vos revenus dépassent les plafonds MaPrimeAdapt",
		), true
	}
	return model.Ineligible(model.CodeInvalidIncomeBracket, "Tranche de revenus invalide"), true
}
