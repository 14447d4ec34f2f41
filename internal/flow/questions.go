package flow

import (
	"strconv"

	"primeadapt/internal/brackets"
	"primeadapt/internal/model"
)

var catalog = map[model.Step]model.Question{
	model.StepResidence: {
		Key:      "residence_is_primary",
		Title:    "Votre logement",
		Subtitle: "Votre projet concerne-t-il votre résidence principale ?",
		Kind:     model.KindSingle,
		Options: []model.Option{
			{Value: string(model.Oui), Label: "Oui"},
			{Value: string(model.Non), Label: "Non"},
		},
	},
	model.StepOccupancy: {
		Key:      "occupancy_status",
		Title:    "Statut d'occupation",
		Subtitle: "Concernant ce logement, vous êtes :",
		Kind:     model.KindSingle,
		Options: []model.Option{
			{Value: string(model.OccupancyOwner), Label: "Propriétaire occupant"},
			{Value: string(model.OccupancyPrivateTenant), Label: "Locataire - logement privé"},
			{Value: string(model.OccupancySocialTenant), Label: "Locataire - logement social"},
			{Value: string(model.OccupancyOther), Label: "Autre situation"},
		},
	},
	model.StepAge: {
		Key:      "age_bracket",
		Title:    "Votre âge",
		Subtitle: "Quel âge avez-vous ?",
		Kind:     model.KindSingle,
		Options: []model.Option{
			{Value: string(model.AgeUnder60), Label: "Moins de 60 ans"},
			{Value: string(model.Age60To69), Label: "Entre 60 et 69 ans"},
			{Value: string(model.Age70AndUp), Label: "70 ans ou plus"},
		},
	},
	model.StepDisability: {
		Key:      "disability_status",
		Title:    "Situation de handicap",
		Subtitle: "Êtes-vous en situation de handicap ?",
		Kind:     model.KindSingle,
		Options: []model.Option{
			{Value: string(model.DisabilityYes), Label: "Oui (taux ≥ 50% ou PCH)"},
			{Value: string(model.DisabilityNo), Label: "Non"},
			{Value: string(model.DisabilityUnknown), Label: "Je ne sais pas"},
		},
	},
	model.StepAutonomy: {
		Key:      "autonomy_gir",
		Title:    "Votre autonomie",
		Subtitle: "Votre perte d'autonomie a-t-elle été évaluée (grille AGGIR) ?",
		Kind:     model.KindSingle,
		Options: []model.Option{
			{Value: string(model.GIR12), Label: "Oui, GIR 1 ou 2"},
			{Value: string(model.GIR34), Label: "Oui, GIR 3 ou 4"},
			{Value: string(model.GIR56), Label: "Oui, GIR 5 ou 6"},
			{Value: string(model.NotAssessed), Label: "Non, pas encore évaluée"},
		},
	},
	model.StepHousehold: {
		Key:   "household_size",
		Title: "Votre foyer",
		Kind:  model.KindForm,
		Fields: []model.Field{
			{Name: "postal_code", Label: "Code postal :", Type: "text", Placeholder: "75001", MaxLength: 5},
		},
		Options: householdOptions(),
	},
	model.StepIncome: {
		Key:      "income_bracket",
		Title:    "Vos revenus",
		Subtitle: "Revenu fiscal de référence total du foyer :",
		Kind:     model.KindSingle,
	},
	model.StepProjects: {
		Key:      "project_types",
		Title:    "Votre projet",
		Subtitle: "Quels travaux envisagez-vous ? (Sélection multiple possible)",
		Kind:     model.KindMulti,
		Options: []model.Option{
			{Value: string(model.ProjectWalkInShower), Label: "Douche de plain-pied"},
			{Value: string(model.ProjectStairlift), Label: "Monte-escalier"},
			{Value: string(model.ProjectGrabBars), Label: "Barres d'appui"},
			{Value: string(model.ProjectAccessRamps), Label: "Rampes d'accès"},
			{Value: string(model.ProjectUndecided), Label: "À définir"},
		},
	},
	model.StepContact: {
		Key:      "contact",
		Title:    "Recevez votre estimation",
		Subtitle: "Remplissez ce formulaire pour recevoir votre estimation par email",
		Kind:     model.KindForm,
		Fields: []model.Field{
			{Name: "first_name", Label: "Prénom :", Type: "text", Placeholder: "Jean", MaxLength: 50},
			{Name: "last_name", Label: "Nom :", Type: "text", Placeholder: "Dupont", MaxLength: 50},
			{Name: "email", Label: "Adresse mail :", Type: "email", Placeholder: "jean.dupont@email.com", MaxLength: 254},
			{Name: "phone", Label: "Numéro de téléphone :", Type: "tel", Placeholder: "06 12 34 56 78", MaxLength: 14},
			{Name: "consent", Label: "J'accepte que mes données soient utilisées pour être recontacté(e) au sujet de MaPrimeAdapt", Type: "checkbox"},
		},
	},
}

func householdOptions() []model.Option {
	opts := make([]model.Option, 0, model.MaxHouseholdSize)
	for n := 1; n <= model.MaxHouseholdSize; n++ {
		label := strconv.Itoa(n) + " personnes"
		switch n {
		case 1:
			label = "1 personne"
		case model.MaxHouseholdSize:
			label += " ou plus"
		}
		opts = append(opts, model.Option{Value: strconv.Itoa(n), Label: label})
	}
	return opts
}

// QuestionCount is the number of question screens, the conditional one included.
func QuestionCount() int {
	return len(catalog)
}

// Question returns the screen description for step, with the income
// options taken from set.
func Question(step model.Step, set brackets.Set) (model.Question, bool) {
	q, ok := catalog[step]
	if !ok {
		return model.Question{}, false
	}
	q.Step = step
	q.Required = step != model.StepProjects
	if step == model.StepIncome {
		q.Options = set.Options
	}
	q.Options = append([]model.Option(nil), q.Options...)
	q.Fields = append([]model.Field(nil), q.Fields...)
	return q, true
}

func hasOption(step model.Step, value string) bool {
	for _, o := range catalog[step].Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
