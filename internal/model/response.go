package model

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StepInfo is what CurrentStep reports to the host.
type StepInfo struct {
	Step      Step `json:"step"`
	Total     int  `json:"total"`
	Responses int  `json:"responses"`
}

// IntegrityReport is a structured diagnostic, never fatal.
type IntegrityReport struct {
	Valid  bool            `json:"valid"`
	Checks map[string]bool `json:"checks"`
}
