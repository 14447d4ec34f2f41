package rules

// cascade is evaluated in order; the first decided rule wins.
var cascade = []Rule{
	&PrimaryResidenceRule{},
	&OccupancyRule{},
	&AgeGateRule{},
	&StructureRule{},
	&IncomeRule{},
}

// Cascade returns the ordered rule list.
func Cascade() []Rule {
	return cascade
}

func Get(name string) (Rule, bool) {
	for _, r := range cascade {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
