// internal/workers/prequalification/evaluate-eligibility/validation.go
package evaluateeligibility

import (
	"fmt"

	"procurement-workers/internal/common/errors"
)

// validateInput rejects inputs the evaluator cannot produce a meaningful
// verdict for. A non-positive budget makes the turnover ratio undefined and
// must fail loudly instead of yielding infinity.
func validateInput(input *Input) *errors.StandardError {
	if input.Project.Budget <= 0 {
		return errors.NewInvalidProjectBudgetError(input.Project.Budget)
	}
	if input.Vendor.Name == "" {
		return errors.NewInvalidVendorProfileError("vendor name is required")
	}
	if input.Vendor.AnnualTurnover < 0 {
		return errors.NewInvalidVendorProfileError(
			fmt.Sprintf("annual turnover must not be negative, got %v", input.Vendor.AnnualTurnover))
	}
	if input.TechnicalScore < 0 || input.TechnicalScore > 100 {
		return errors.NewInvalidVendorProfileError(
			fmt.Sprintf("technical score must be within 0-100, got %v", input.TechnicalScore))
	}
	if input.FinancialScore < 0 || input.FinancialScore > 100 {
		return errors.NewInvalidVendorProfileError(
			fmt.Sprintf("financial score must be within 0-100, got %v", input.FinancialScore))
	}
	return nil
}
