// internal/workers/prequalification/evaluate-eligibility/models.go
package evaluateeligibility

import "procurement-workers/internal/models"

type Input struct {
	Vendor         models.VendorProfile      `json:"vendor"`
	Project        models.ProjectRequirement `json:"project"`
	TechnicalScore float64                   `json:"technicalScore"`
	FinancialScore float64                   `json:"financialScore"`
}

type Output struct {
	models.EligibilityVerdict
}
