package engine

import (
	"primeadapt/internal/model"
	"primeadapt/internal/rules"
)

// RuleOutcome records what one rule of the cascade concluded.
type RuleOutcome struct {
	Rule    string         `json:"rule"`
	Decided bool           `json:"decided"`
	Verdict *model.Verdict `json:"verdict,omitempty"`
}

// Evaluate runs the eligibility cascade over a completed response set.
// It never fails: every problem becomes an ineligible verdict.
func Evaluate(r model.Responses) model.Verdict {
	v, _ := run(&r, false)
	return v
}

// Trace is Evaluate plus the outcome of every rule that ran.
func Trace(r model.Responses) (model.Verdict, []RuleOutcome) {
	return run(&r, true)
}

func run(r *model.Responses, trace bool) (model.Verdict, []RuleOutcome) {
	var outcomes []RuleOutcome

	for _, rule := range rules.Cascade() {
		verdict, decided := rule.Check(r)
		if trace {
			o := RuleOutcome{Rule: rule.Name(), Decided: decided}
			if decided {
				v := verdict
				o.Verdict = &v
			}
			outcomes = append(outcomes, o)
		}
		if decided {
			return verdict, outcomes
		}
	}

	// IncomeRule always decides; reaching this means the cascade is misconfigured.
	return model.Ineligible(model.CodeInvalidIncomeBracket, "Tranche de revenus invalide"), outcomes
}
