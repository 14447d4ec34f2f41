package model

// Message is a user-facing validation message tied to the active step.
type Message struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeOptionRequired    = "OPTION_REQUIRED"
	CodeUnknownOption     = "UNKNOWN_OPTION"
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodeInvalidPostalCode = "INVALID_POSTAL_CODE"
	CodeHouseholdRequired = "HOUSEHOLD_REQUIRED"
	CodeInvalidFirstName  = "INVALID_FIRST_NAME"
	CodeInvalidLastName   = "INVALID_LAST_NAME"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeInvalidPhone      = "INVALID_PHONE"
	CodeConsentRequired   = "CONSENT_REQUIRED"
	CodeNotAtStep         = "NOT_AT_STEP"
)
