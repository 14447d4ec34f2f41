package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"primeadapt/internal/model"
)

type recorder struct {
	NopObserver
	steps  []string
	values []string
}

func (r *recorder) OnStep(step model.Step, value string) {
	r.steps = append(r.steps, step.String())
	r.values = append(r.values, value)
}

// walkToHousehold answers steps 1-3 (and 4 when asked) and stops on step 5.
func walkToHousehold(t *testing.T, c *Controller, age model.AgeBracket, disability model.Disability) {
	t.Helper()
	require.True(t, c.Select("oui").Moved)
	require.True(t, c.Select("owner").Moved)
	out := c.Select(string(age))
	require.True(t, out.Moved)
	if age == model.Age70AndUp {
		require.Equal(t, model.StepHousehold, c.Step())
		return
	}
	require.Equal(t, model.StepDisability, c.Step())
	c.Select(string(disability))
}

func completeContact(t *testing.T, c *Controller) {
	t.Helper()
	require.False(t, c.Input("first_name", "Jean").Rejected())
	require.False(t, c.Input("last_name", "Dupont").Rejected())
	require.False(t, c.Input("email", "jean.dupont@example.com").Rejected())
	require.False(t, c.Input("phone", "06 12 34 56 78").Rejected())
	require.False(t, c.SetConsent(true).Rejected())
}

func TestLinearFlowToResult(t *testing.T) {
	obs := &recorder{}
	c := New(obs)
	require.Equal(t, model.StepResidence, c.Step())

	walkToHousehold(t, c, model.AgeUnder60, model.DisabilityYes)
	require.Equal(t, model.StepHousehold, c.Step())

	c.Input("postal_code", " 69000 ")
	out := c.Select("2")
	require.False(t, out.Moved, "household selection must not auto-advance")
	require.Equal(t, model.StepHousehold, c.Step())

	out = c.Advance()
	require.True(t, out.Moved)
	require.Equal(t, model.StepIncome, c.Step())
	require.Equal(t, 2, c.Brackets().HouseholdSize)

	out = c.Select("tranche_2")
	require.True(t, out.AutoAdvance)
	require.EqualValues(t, 500, out.DelayMs)
	require.Equal(t, model.StepProjects, c.Step())

	c.Toggle("stairlift")
	c.Toggle("grab_bars")
	c.Toggle("stairlift")
	require.Equal(t, []model.ProjectType{model.ProjectGrabBars}, c.Responses().ProjectTypes)
	require.Equal(t, model.StepProjects, c.Step())

	require.True(t, c.Advance().Moved)
	require.Equal(t, model.StepContact, c.Step())

	completeContact(t, c)
	out = c.Advance()
	require.True(t, out.Moved)
	require.Equal(t, model.StepResult, c.Step())
	require.NotNil(t, out.Verdict)
	require.True(t, out.Verdict.Eligible)
	require.Equal(t, 50, out.Verdict.Rate())

	require.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, obs.steps)
	require.Equal(t, []string{"oui", "owner", "under_60", "yes", "2", "tranche_2"}, obs.values)

	require.False(t, c.Advance().Moved, "no transition after the result screen")
	require.False(t, c.Retreat().Moved)
}

func TestSeventyPlusSkipsDisabilityAndAutonomy(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")

	require.Equal(t, model.StepHousehold, c.Step())
	require.Equal(t, model.Disability(""), c.Responses().DisabilityStatus)

	c.Retreat()
	require.Equal(t, model.StepAge, c.Step())
}

func TestAutonomyBranch(t *testing.T) {
	for _, d := range []model.Disability{model.DisabilityNo, model.DisabilityUnknown} {
		c := New(nil)
		walkToHousehold(t, c, model.Age60To69, d)
		require.Equal(t, model.StepAutonomy, c.Step(), "disability %s", d)

		out := c.Select("gir_3_4")
		require.False(t, out.Moved, "4b never auto-advances")
		require.True(t, c.Advance().Moved)
		require.Equal(t, model.StepHousehold, c.Step())

		c.Retreat()
		require.Equal(t, model.StepAutonomy, c.Step())
		c.Retreat()
		require.Equal(t, model.StepDisability, c.Step())
	}
}

func TestAutonomyNotShownWithDisability(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age60To69, model.DisabilityYes)
	require.Equal(t, model.StepHousehold, c.Step())

	c.Retreat()
	require.Equal(t, model.StepDisability, c.Step())
}

func TestAutonomyPrunedWhenPathChanges(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age60To69, model.DisabilityNo)
	c.Select("gir_1_2")
	c.Advance()
	require.Equal(t, model.GIR12, c.Responses().AutonomyGIR)

	// back to step 4, now declaring a disability: 4b is skipped and its answer dropped
	c.Retreat()
	c.Retreat()
	out := c.Select("yes")
	require.True(t, out.Moved)
	require.Equal(t, model.StepHousehold, c.Step())
	require.Equal(t, model.AutonomyGIR(""), c.Responses().AutonomyGIR)
}

func TestSingleChoiceRequiresSelection(t *testing.T) {
	c := New(nil)
	out := c.Advance()
	require.False(t, out.Moved)
	require.NotNil(t, out.Message)
	require.Equal(t, model.CodeOptionRequired, out.Message.Code)
	require.Equal(t, model.StepResidence, c.Step())

	out = c.Select("peut-être")
	require.True(t, out.Rejected())
	require.Equal(t, model.CodeUnknownOption, out.Message.Code)
	require.Equal(t, model.Responses{}, c.Responses())
}

func TestHouseholdGate(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")

	c.Select("3")
	c.Input("postal_code", "00100")
	out := c.Advance()
	require.True(t, out.Rejected())
	require.Equal(t, model.CodeInvalidPostalCode, out.Message.Code)

	c = New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")
	c.Input("postal_code", "69000")
	out = c.Advance()
	require.True(t, out.Rejected())
	require.Equal(t, model.CodeHouseholdRequired, out.Message.Code)
	require.Equal(t, model.StepHousehold, c.Step())
}

func TestHouseholdChangeDiscardsBrackets(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")
	c.Input("postal_code", "69000")
	c.Select("1")
	c.Advance()

	first := c.Brackets()
	c.Select("tranche_1")
	require.Equal(t, model.StepProjects, c.Step())

	c.Retreat()
	c.Retreat()
	require.Equal(t, model.StepHousehold, c.Step())

	c.Select("4")
	require.Equal(t, model.IncomeBracket(""), c.Responses().IncomeBracket, "stale tranche kept")
	require.NotEqual(t, first.Thresholds, c.Brackets().Thresholds)

	c.Advance()
	require.Equal(t, model.StepIncome, c.Step())
	out := c.Advance()
	require.True(t, out.Rejected(), "income step must require a fresh selection")

	// re-selecting the same size keeps the current answer
	c.Select("tranche_2")
	c.Retreat()
	c.Retreat()
	c.Select("4")
	require.Equal(t, model.Tranche2, c.Responses().IncomeBracket)
}

func TestIncomeSelectionRejectsUnknownTranche(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")
	c.Input("postal_code", "69000")
	c.Select("2")
	c.Advance()

	out := c.Select("tranche_4")
	require.True(t, out.Rejected())
	require.Equal(t, model.StepIncome, c.Step())
}

func TestContactRequiresConsent(t *testing.T) {
	c := reachContact(t)
	completeContact(t, c)
	c.SetConsent(false)

	out := c.Advance()
	require.True(t, out.Rejected())
	require.Equal(t, model.CodeConsentRequired, out.Message.Code)
	require.Equal(t, model.StepContact, c.Step())
	require.Nil(t, c.Verdict())

	c.SetConsent(true)
	c.Input("email", "a..b@example.com")
	out = c.Advance()
	require.Equal(t, model.CodeInvalidEmail, out.Message.Code)
}

func TestInputIsSanitizedAndScoped(t *testing.T) {
	c := New(nil)
	out := c.Input("email", "x@example.com")
	require.True(t, out.Rejected())
	require.Equal(t, model.CodeNotAtStep, out.Message.Code)

	out = c.Input("password", "x")
	require.Equal(t, model.CodeUnknownField, out.Message.Code)

	c = reachContact(t)
	c.Input("first_name", "  <b>Jean</b> ")
	require.Equal(t, "bJean/b", c.Responses().FirstName)
}

func TestResetClearsEverything(t *testing.T) {
	c := reachContact(t)
	completeContact(t, c)
	c.Advance()
	require.True(t, c.Completed())

	c.Reset()
	require.Equal(t, model.StepResidence, c.Step())
	require.Equal(t, model.Responses{}, c.Responses())
	require.True(t, c.Brackets().Empty())
	require.Nil(t, c.Verdict())
}

func TestViewNavigation(t *testing.T) {
	c := New(nil)
	v := c.View()
	require.False(t, v.PrevVisible)
	require.Equal(t, "Suivant", v.NextLabel)
	require.InDelta(t, 12.5, v.Progress, 0.001)
	require.NotNil(t, v.Question)
	require.Equal(t, "residence_is_primary", v.Question.Key)

	walkToHousehold(t, c, model.Age60To69, model.DisabilityNo)
	v = c.View()
	require.Equal(t, model.StepAutonomy, v.Step)
	require.InDelta(t, 56.25, v.Progress, 0.001)
	require.True(t, v.PrevVisible)

	c = reachContact(t)
	v = c.View()
	require.Equal(t, "Calculer mon estimation", v.NextLabel)
	require.InDelta(t, 100, v.Progress, 0.001)

	completeContact(t, c)
	c.Advance()
	v = c.View()
	require.False(t, v.PrevVisible)
	require.False(t, v.NextVisible)
	require.Nil(t, v.Question)
	require.NotNil(t, v.Verdict)
}

func TestIncomeQuestionUsesGeneratedBrackets(t *testing.T) {
	c := New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")
	c.Input("postal_code", "69000")
	c.Select("6")
	c.Advance()

	q := c.View().Question
	want := []model.Option{
		{Value: "tranche_1", Label: "Moins de 45 047 €"},
		{Value: "tranche_2", Label: "Entre 45 047 € et 57 743 €"},
		{Value: "tranche_3", Label: "Plus de 57 743 €"},
	}
	if diff := cmp.Diff(want, q.Options); diff != "" {
		t.Fatalf("income options mismatch (-want +got):\n%s", diff)
	}
}

func TestOutcomePatch(t *testing.T) {
	c := New(nil)
	out := c.Select("oui")
	require.Len(t, out.Patch, 1)
	require.Equal(t, "add", out.Patch[0].Op)
	require.Equal(t, "/residence_is_primary", out.Patch[0].Path)

	out = c.Retreat()
	require.Empty(t, out.Patch)
}

func reachContact(t *testing.T) *Controller {
	t.Helper()
	c := New(nil)
	walkToHousehold(t, c, model.Age70AndUp, "")
	c.Input("postal_code", "69000")
	c.Select("2")
	c.Advance()
	c.Select("tranche_1")
	c.Advance()
	require.Equal(t, model.StepContact, c.Step())
	return c
}
