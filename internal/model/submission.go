package model

// Consent is the RGPD record attached to every submission.
type Consent struct {
	Given           bool   `json:"given"`
	RecordID        string `json:"record_id"`
	Purpose         string `json:"purpose"`
	RetentionPeriod string `json:"retention_period"`
	LegalBasis      string `json:"legal_basis"`
	CollectedAt     string `json:"collected_at"`
}

// Submission is the payload posted to the webhook once the wizard completes.
type Submission struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Eligible    bool      `json:"eligible"`
	Eligibility Verdict   `json:"eligibility"`
	AidRate     *int      `json:"aid_rate"`
	Responses   Responses `json:"responses"`
	SessionID   string    `json:"session_id"`
	Timestamp   string    `json:"timestamp"`
	UserAgent   string    `json:"user_agent"`
	Consent     Consent   `json:"consent"`
}
