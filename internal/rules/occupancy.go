package rules

import "primeadapt/internal/model"

type OccupancyRule struct{}

func (OccupancyRule) Name() string { return "occupancy" }

func (OccupancyRule) Check(r *model.Responses) (model.Verdict, bool) {
	if r.OccupancyStatus == model.OccupancySocialTenant {
		return model.Ineligible(
			model.CodeSocialHousingExcluded,
			"MaPrimeAdapt ne concerne pas les logements sociaux",
		), true
	}
	return model.Verdict{}, false
}
