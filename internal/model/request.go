package model

// Requests accepted by the renderer-facing HTTP API.

type SelectRequest struct {
	Value string `json:"value" validate:"required,max=64"`
}

type InputRequest struct {
	Field string `json:"field" validate:"required,oneof=postal_code first_name last_name email phone"`
	Value string `json:"value" validate:"max=4096"`
}

type ConsentRequest struct {
	Given bool `json:"given"`
}

type EvaluateRequest struct {
	Responses Responses `json:"responses"`
	Trace     bool      `json:"trace,omitempty"`
}
