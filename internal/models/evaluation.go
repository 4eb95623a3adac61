// internal/models/evaluation.go
package models

import "time"

// EvaluationInput bundles everything one evaluation needs: the vendor, the
// project it is measured against, and the invoice for the three-way match.
type EvaluationInput struct {
	ScenarioID     string             `json:"scenarioId,omitempty"`
	Vendor         VendorProfile      `json:"vendor"`
	Project        ProjectRequirement `json:"project"`
	Invoice        InvoiceRecord      `json:"invoice"`
	TechnicalScore float64            `json:"technicalScore"`
	FinancialScore float64            `json:"financialScore"`
}

// EvaluationRecord is the flattened result returned to callers and indexed
// for audit. One record per evaluation request; records are request-scoped
// and never cached process-wide.
type EvaluationRecord struct {
	EvaluationID string    `json:"evaluationId"`
	ScenarioID   string    `json:"scenarioId,omitempty"`
	VendorName   string    `json:"vendorName"`
	ProjectID    string    `json:"projectId,omitempty"`
	EvaluatedAt  time.Time `json:"evaluatedAt"`

	Eligibility EligibilityVerdict `json:"eligibility"`
	Match       MatchVerdict       `json:"match"`
}
