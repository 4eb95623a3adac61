// internal/workers/scenarios/provide-scenario/models.go
package providescenario

import "procurement-workers/internal/models"

type Input struct {
	// RequestID is optional correlation carried through to the output.
	RequestID string `json:"requestId,omitempty"`
}

type Output struct {
	RequestID string                 `json:"requestId,omitempty"`
	Scenario  models.EvaluationInput `json:"scenario"`
}
