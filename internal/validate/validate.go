// Package validate holds the field-level predicates the wizard runs before
// leaving a step. Every check is pure and reports a user-facing reason on
// failure; none of them can fail in any other way.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"primeadapt/internal/model"
)

// Result is the outcome of a single check.
type Result struct {
	OK     bool
	Code   string
	Reason string
}

func pass() Result { return Result{OK: true} }

func fail(code, reason string) Result {
	return Result{Code: code, Reason: reason}
}

// Message converts a failed result to the message shown to the user.
func (r Result) Message() *model.Message {
	if r.OK {
		return nil
	}
	return &model.Message{Code: r.Code, Message: r.Reason}
}

const (
	ReasonPostalCode = "Veuillez saisir un code postal français valide (5 chiffres)"
	ReasonHousehold  = "Veuillez sélectionner le nombre de personnes dans votre foyer"
	ReasonFirstName  = "Prénom invalide (2-50 caractères, lettres uniquement)"
	ReasonLastName   = "Nom invalide (2-50 caractères, lettres uniquement)"
	ReasonEmail      = "Adresse email invalide"
	ReasonPhone      = "Numéro de téléphone français invalide"
	ReasonConsent    = "Veuillez accepter le traitement de vos données pour recevoir votre estimation"
	ReasonOption     = "Veuillez sélectionner une option"
)

var (
	// department 01-98; 00 and 99 never exist
	postalCodeRe = regexp.MustCompile(`^(?:0[1-9]|[1-8][0-9]|9[0-8])[0-9]{3}$`)
	emailRe      = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	phoneStripRe = regexp.MustCompile(`[\s.-]`)
	mobileRe     = regexp.MustCompile(`^(?:\+33|0)[67][0-9]{8}$`)
	landlineRe   = regexp.MustCompile(`^(?:\+33|0)[1-5][0-9]{8}$`)
	nameRe       = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]{2,50}$`)
)

// monacoPrefix covers the 980xx codes used by Monaco, which share the
// 98 prefix but are not French.
const monacoPrefix = "980"

func PostalCode(code string) Result {
	if !postalCodeRe.MatchString(code) || strings.HasPrefix(code, monacoPrefix) {
		return fail(model.CodeInvalidPostalCode, ReasonPostalCode)
	}
	return pass()
}

func Email(email string) Result {
	if len(email) > 254 ||
		!emailRe.MatchString(email) ||
		strings.Contains(email, "..") ||
		strings.HasPrefix(email, ".") ||
		strings.HasSuffix(email, ".") {
		return fail(model.CodeInvalidEmail, ReasonEmail)
	}
	return pass()
}

// NormalizePhone removes the separators people type between digit groups.
func NormalizePhone(phone string) string {
	return phoneStripRe.ReplaceAllString(phone, "")
}

func Phone(phone string) Result {
	clean := NormalizePhone(phone)
	if mobileRe.MatchString(clean) || landlineRe.MatchString(clean) {
		return pass()
	}
	return fail(model.CodeInvalidPhone, ReasonPhone)
}

func name(v string) bool {
	return nameRe.MatchString(v) &&
		!strings.Contains(v, "  ") &&
		utf8.RuneCountInString(strings.TrimSpace(v)) >= 2
}

func FirstName(v string) Result {
	if !name(v) {
		return fail(model.CodeInvalidFirstName, ReasonFirstName)
	}
	return pass()
}

func LastName(v string) Result {
	if !name(v) {
		return fail(model.CodeInvalidLastName, ReasonLastName)
	}
	return pass()
}

func Consent(given bool) Result {
	if !given {
		return fail(model.CodeConsentRequired, ReasonConsent)
	}
	return pass()
}

func HouseholdSize(n int) Result {
	if n < 1 || n > model.MaxHouseholdSize {
		return fail(model.CodeHouseholdRequired, ReasonHousehold)
	}
	return pass()
}

func IncomeBracket(b model.IncomeBracket) bool {
	switch b {
	case model.Tranche1, model.Tranche2, model.Tranche3:
		return true
	}
	return false
}

// Contact runs the final-step gate. Consent is checked first so an
// unchecked box always produces the consent message.
func Contact(r model.Responses) Result {
	checks := []Result{
		Consent(r.Consent),
		FirstName(r.FirstName),
		LastName(r.LastName),
		Email(r.Email),
		Phone(r.Phone),
	}
	for _, c := range checks {
		if !c.OK {
			return c
		}
	}
	return pass()
}
