// internal/workers/presentation/render-verdict/models.go
package renderverdict

import "procurement-workers/internal/models"

type Input struct {
	EvaluationID string                    `json:"evaluationId"`
	VendorName   string                    `json:"vendorName"`
	Eligibility  models.EligibilityVerdict `json:"eligibility"`
	Match        models.MatchVerdict       `json:"match"`
}

type Output struct {
	Delivered    bool                `json:"delivered"`
	FormDetected bool                `json:"formDetected"`
	Notice       string              `json:"notice,omitempty"`
	Directives   models.DirectiveSet `json:"directives"`
}
