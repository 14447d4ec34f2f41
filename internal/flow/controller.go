// Package flow is the wizard state machine. It owns the current step and the
// response set; renderers only call the intent methods below.
package flow

import (
	"strconv"
	"time"

	"primeadapt/internal/brackets"
	"primeadapt/internal/engine"
	"primeadapt/internal/jsonpatch"
	"primeadapt/internal/model"
	"primeadapt/internal/validate"
)

// AutoAdvanceDelay is how long the renderer keeps the selected option
// visible before showing the next step.
const AutoAdvanceDelay = 500 * time.Millisecond

const (
	NextLabel      = "Suivant"
	NextLabelFinal = "Calculer mon estimation"
)

// Outcome describes the effect of one intent.
type Outcome struct {
	Step        model.Step     `json:"step"`
	Moved       bool           `json:"moved"`
	AutoAdvance bool           `json:"auto_advance,omitempty"`
	DelayMs     int64          `json:"delay_ms,omitempty"`
	Message     *model.Message `json:"message,omitempty"`
	Verdict     *model.Verdict `json:"verdict,omitempty"`
	Patch       []jsonpatch.Op `json:"patch,omitempty"`
}

// Rejected reports whether the intent was refused by validation.
func (o Outcome) Rejected() bool {
	return o.Message != nil
}

type Controller struct {
	step      model.Step
	responses model.Responses
	brackets  brackets.Set
	verdict   *model.Verdict
	observer  Observer
}

func New(observer Observer) *Controller {
	if observer == nil {
		observer = NopObserver{}
	}
	c := &Controller{observer: observer}
	c.Reset()
	return c
}

func (c *Controller) Step() model.Step {
	return c.step
}

func (c *Controller) Responses() model.Responses {
	return c.responses.Clone()
}

func (c *Controller) Brackets() brackets.Set {
	return c.brackets
}

// Verdict is nil until the wizard reached the result screen.
func (c *Controller) Verdict() *model.Verdict {
	return c.verdict
}

func (c *Controller) Completed() bool {
	return c.step == model.StepResult
}

// Reset goes back to step 1 with an empty response set.
func (c *Controller) Reset() {
	c.step = model.StepResidence
	c.responses = model.Responses{}
	c.brackets = brackets.Set{}
	c.verdict = nil
}

func reject(step model.Step, code, reason string) Outcome {
	return Outcome{Step: step, Message: &model.Message{Code: code, Message: reason}}
}

func autoAdvances(step model.Step) bool {
	switch step {
	case model.StepResidence, model.StepOccupancy, model.StepAge, model.StepDisability, model.StepIncome:
		return true
	}
	return false
}

// Select records a single-choice answer for the current step. On steps
// 1-4 and 6 it also advances.
func (c *Controller) Select(value string) Outcome {
	if c.step == model.StepProjects {
		return c.Toggle(value)
	}

	before := c.responses.Clone()
	if out, ok := c.record(value); !ok {
		return out
	}
	c.observer.OnStep(c.step, value)

	if !autoAdvances(c.step) {
		return c.outcome(before, false)
	}

	out := c.advance(before)
	out.AutoAdvance = true
	out.DelayMs = AutoAdvanceDelay.Milliseconds()
	return out
}

func (c *Controller) record(value string) (Outcome, bool) {
	r := &c.responses
	switch c.step {
	case model.StepIncome:
		if !c.brackets.Valid(value, r.HouseholdSize) {
			return reject(c.step, model.CodeUnknownOption, validate.ReasonOption), false
		}
		r.IncomeBracket = model.IncomeBracket(value)
		return Outcome{}, true
	case model.StepContact, model.StepResult:
		return reject(c.step, model.CodeNotAtStep, validate.ReasonOption), false
	}

	if !hasOption(c.step, value) {
		return reject(c.step, model.CodeUnknownOption, validate.ReasonOption), false
	}

	switch c.step {
	case model.StepResidence:
		r.ResidenceIsPrimary = model.YesNo(value)
	case model.StepOccupancy:
		r.OccupancyStatus = model.Occupancy(value)
	case model.StepAge:
		r.AgeBracket = model.AgeBracket(value)
	case model.StepDisability:
		r.DisabilityStatus = model.Disability(value)
	case model.StepAutonomy:
		r.AutonomyGIR = model.AutonomyGIR(value)
	case model.StepHousehold:
		n, _ := strconv.Atoi(value)
		c.setHousehold(n)
	}
	return Outcome{}, true
}

// setHousehold regenerates the income brackets whenever the size changes;
// a selection made against the previous brackets is dropped.
func (c *Controller) setHousehold(n int) {
	if c.responses.HouseholdSize != n || c.brackets.HouseholdSize != brackets.Clamp(n) {
		c.responses.IncomeBracket = ""
		c.brackets = brackets.Generate(n)
	}
	c.responses.HouseholdSize = n
}

// Toggle flips membership of a project type at step 7. It never advances.
func (c *Controller) Toggle(value string) Outcome {
	if c.step != model.StepProjects {
		return reject(c.step, model.CodeNotAtStep, validate.ReasonOption)
	}
	if !hasOption(c.step, value) {
		return reject(c.step, model.CodeUnknownOption, validate.ReasonOption)
	}

	before := c.responses.Clone()
	p := model.ProjectType(value)
	if c.responses.HasProject(p) {
		kept := c.responses.ProjectTypes[:0]
		for _, v := range c.responses.ProjectTypes {
			if v != p {
				kept = append(kept, v)
			}
		}
		c.responses.ProjectTypes = kept
	} else {
		c.responses.ProjectTypes = append(c.responses.ProjectTypes, p)
	}
	return c.outcome(before, false)
}

// Input captures a text field after sanitizing it. Validation happens when
// the step is left.
func (c *Controller) Input(field, text string) Outcome {
	allowed := map[string]model.Step{
		"postal_code": model.StepHousehold,
		"first_name":  model.StepContact,
		"last_name":   model.StepContact,
		"email":       model.StepContact,
		"phone":       model.StepContact,
	}
	step, ok := allowed[field]
	if !ok {
		return reject(c.step, model.CodeUnknownField, "Champ inconnu : "+validate.Sanitize(field))
	}
	if step != c.step {
		return reject(c.step, model.CodeNotAtStep, "Ce champ n'est pas modifiable à cette étape")
	}

	before := c.responses.Clone()
	v := validate.Sanitize(text)
	switch field {
	case "postal_code":
		c.responses.PostalCode = v
	case "first_name":
		c.responses.FirstName = v
	case "last_name":
		c.responses.LastName = v
	case "email":
		c.responses.Email = v
	case "phone":
		c.responses.Phone = v
	}
	return c.outcome(before, false)
}

// SetConsent ticks or unticks the consent box on the final step.
func (c *Controller) SetConsent(given bool) Outcome {
	if c.step != model.StepContact {
		return reject(c.step, model.CodeNotAtStep, "Ce champ n'est pas modifiable à cette étape")
	}
	before := c.responses.Clone()
	c.responses.Consent = given
	return c.outcome(before, false)
}

// Advance leaves the current step if it validates. Leaving step 8 runs
// the eligibility engine and lands on the result screen.
func (c *Controller) Advance() Outcome {
	return c.advance(c.responses.Clone())
}

func (c *Controller) advance(before model.Responses) Outcome {
	if c.step == model.StepResult {
		return c.outcome(before, false)
	}
	if msg := c.gate(); msg != nil {
		out := c.outcome(before, false)
		out.Message = msg
		return out
	}

	c.step = c.next()
	if c.step == model.StepResult {
		v := engine.Evaluate(c.responses)
		c.verdict = &v
	}

	out := c.outcome(before, true)
	out.Verdict = c.verdict
	return out
}

// gate returns nil when the current step may be left.
func (c *Controller) gate() *model.Message {
	r := c.responses
	optionMissing := &model.Message{Code: model.CodeOptionRequired, Message: validate.ReasonOption}

	switch c.step {
	case model.StepResidence:
		if r.ResidenceIsPrimary == "" {
			return optionMissing
		}
	case model.StepOccupancy:
		if r.OccupancyStatus == "" {
			return optionMissing
		}
	case model.StepAge:
		if r.AgeBracket == "" {
			return optionMissing
		}
	case model.StepDisability:
		if r.DisabilityStatus == "" {
			return optionMissing
		}
	case model.StepAutonomy:
		if r.AutonomyGIR == "" {
			return optionMissing
		}
	case model.StepHousehold:
		if res := validate.PostalCode(r.PostalCode); !res.OK {
			return res.Message()
		}
		if res := validate.HouseholdSize(r.HouseholdSize); !res.OK {
			return res.Message()
		}
	case model.StepIncome:
		if !c.brackets.Valid(string(r.IncomeBracket), r.HouseholdSize) {
			return optionMissing
		}
	case model.StepProjects:
		return nil
	case model.StepContact:
		return validate.Contact(r).Message()
	}
	return nil
}

// next computes the forward transition and prunes answers to questions
// the new path skips.
func (c *Controller) next() model.Step {
	r := &c.responses
	switch c.step {
	case model.StepAge:
		if r.AgeBracket == model.Age70AndUp {
			r.DisabilityStatus = ""
			r.AutonomyGIR = ""
			return model.StepHousehold
		}
		return model.StepDisability
	case model.StepDisability:
		if r.AgeBracket == model.Age60To69 && r.DisabilityStatus != model.DisabilityYes {
			return model.StepAutonomy
		}
		r.AutonomyGIR = ""
		return model.StepHousehold
	case model.StepAutonomy:
		return model.StepHousehold
	case model.StepHousehold:
		if c.brackets.HouseholdSize != brackets.Clamp(r.HouseholdSize) || c.brackets.Empty() {
			c.setHousehold(r.HouseholdSize)
		}
		return model.StepIncome
	}
	return c.step + 1
}

// Retreat goes back one screen without validating anything.
func (c *Controller) Retreat() Outcome {
	before := c.responses.Clone()
	switch c.step {
	case model.StepResidence, model.StepResult:
		return c.outcome(before, false)
	case model.StepHousehold:
		switch {
		case c.responses.AutonomyGIR != "":
			c.step = model.StepAutonomy
		case c.responses.AgeBracket == model.Age70AndUp:
			c.step = model.StepAge
		default:
			c.step = model.StepDisability
		}
	case model.StepAutonomy:
		c.step = model.StepDisability
	default:
		c.step--
	}
	return c.outcome(before, true)
}

func (c *Controller) outcome(before model.Responses, moved bool) Outcome {
	patch, err := jsonpatch.Diff(before, c.responses)
	if err != nil {
		c.observer.OnError("response diff failed", err)
	}
	return Outcome{Step: c.step, Moved: moved, Patch: patch}
}
