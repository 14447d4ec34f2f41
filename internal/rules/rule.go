package rules

import "primeadapt/internal/model"

// Rule is one gate of the eligibility cascade. Check returns decided=true
// when the rule settles the verdict and the cascade must stop there.
type Rule interface {
	Name() string
	Check(r *model.Responses) (verdict model.Verdict, decided bool)
}
