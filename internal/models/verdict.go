// internal/models/verdict.go
package models

// Check names, in the order the eligibility evaluator runs them. The first
// failing check in this order determines the verdict reason.
const (
	CheckTurnoverAdequate   = "turnover-adequate"
	CheckCapabilityMatch    = "capability-match"
	CheckTechnicalScorePass = "technical-score-pass"
	CheckFinancialScorePass = "financial-score-pass"
)

// Match statuses for the three-way match verdict.
const (
	MatchStatusMatch    = "match"
	MatchStatusMismatch = "mismatch"
)

// CheckResult records a single pre-qualification sub-check outcome.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// EligibilityVerdict is the derived outcome of a pre-qualification
// evaluation. It is never constructed by hand outside the evaluator: the
// reason is always computed from the checks so the two cannot drift apart.
type EligibilityVerdict struct {
	Eligible      bool          `json:"eligible"`
	Checks        []CheckResult `json:"checks"`
	TurnoverRatio float64       `json:"turnoverRatio"`
	Reason        string        `json:"reason"`
}

// MatchVerdict is the derived outcome of a three-way match. Difference is the
// absolute gap between the invoice and PO amounts.
type MatchVerdict struct {
	Status        string  `json:"status"`
	InvoiceAmount float64 `json:"invoiceAmount"`
	POAmount      float64 `json:"poAmount"`
	Difference    float64 `json:"difference"`
}

// Matched reports whether the verdict is a match.
func (v MatchVerdict) Matched() bool {
	return v.Status == MatchStatusMatch
}
