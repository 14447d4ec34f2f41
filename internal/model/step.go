package model

import "strconv"

// Step identifies a wizard screen. StepAutonomy is the conditional
// question shown between steps 4 and 5, not a numeric position.
type Step int

const (
	StepNone Step = iota
	StepResidence
	StepOccupancy
	StepAge
	StepDisability
	StepAutonomy
	StepHousehold
	StepIncome
	StepProjects
	StepContact
	StepResult
)

// TotalSteps is the number of regular questions, the conditional one excluded.
const TotalSteps = 8

var stepPositions = map[Step]float64{
	StepResidence:  1,
	StepOccupancy:  2,
	StepAge:        3,
	StepDisability: 4,
	StepAutonomy:   4.5,
	StepHousehold:  5,
	StepIncome:     6,
	StepProjects:   7,
	StepContact:    8,
	StepResult:     8,
}

// Position is the fractional place of the step on the progress bar.
func (s Step) Position() float64 {
	return stepPositions[s]
}

// Progress returns the percentage shown by the progress indicator.
func (s Step) Progress() float64 {
	p := s.Position() / TotalSteps * 100
	if p > 100 {
		return 100
	}
	return p
}

func (s Step) String() string {
	switch s {
	case StepAutonomy:
		return "4b"
	case StepResult:
		return "result"
	case StepNone:
		return ""
	}
	if s > StepAutonomy {
		return strconv.Itoa(int(s) - 1)
	}
	return strconv.Itoa(int(s))
}

// ParseStep is the inverse of String.
func ParseStep(v string) (Step, bool) {
	for s := StepResidence; s <= StepResult; s++ {
		if s.String() == v {
			return s, true
		}
	}
	return StepNone, false
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	v, ok := ParseStep(string(b))
	if !ok {
		return &StepError{Value: string(b)}
	}
	*s = v
	return nil
}

type StepError struct {
	Value string
}

func (e *StepError) Error() string {
	return "unknown step " + strconv.Quote(e.Value)
}
