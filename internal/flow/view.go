package flow

import "primeadapt/internal/model"

// View is everything a renderer needs to draw the current screen.
type View struct {
	Step        model.Step      `json:"step"`
	Progress    float64         `json:"progress"`
	PrevVisible bool            `json:"prev_visible"`
	NextVisible bool            `json:"next_visible"`
	NextLabel   string          `json:"next_label,omitempty"`
	Question    *model.Question `json:"question,omitempty"`
	Answers     model.Responses `json:"answers"`
	Verdict     *model.Verdict  `json:"verdict,omitempty"`
}

func (c *Controller) View() View {
	v := View{
		Step:        c.step,
		Progress:    c.step.Progress(),
		PrevVisible: c.step != model.StepResidence && c.step != model.StepResult,
		NextVisible: c.step != model.StepResult,
		Answers:     c.responses.Clone(),
		Verdict:     c.verdict,
	}
	if v.NextVisible {
		v.NextLabel = NextLabel
		if c.step == model.StepContact {
			v.NextLabel = NextLabelFinal
		}
	}
	if q, ok := Question(c.step, c.brackets); ok {
		v.Question = &q
	}
	return v
}
