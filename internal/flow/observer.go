package flow

import "primeadapt/internal/model"

// Observer receives synchronous notifications from a wizard session.
type Observer interface {
	// OnStep fires after every single-choice answer is recorded.
	OnStep(step model.Step, value string)
	// OnComplete fires once the submission has been handed to delivery.
	OnComplete(sub model.Submission)
	// OnError reports any caught failure.
	OnError(message string, data interface{})
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) OnStep(model.Step, string)   {}
func (NopObserver) OnComplete(model.Submission) {}
func (NopObserver) OnError(string, interface{}) {}
