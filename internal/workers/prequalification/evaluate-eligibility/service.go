// internal/workers/prequalification/evaluate-eligibility/service.go
package evaluateeligibility

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"procurement-workers/internal/models"
)

// ReasonAllCriteriaMet is the verdict reason when every sub-check passes.
const ReasonAllCriteriaMet = "All pre-qualification criteria met"

// Evaluate runs the four pre-qualification sub-checks in their fixed order
// and derives the verdict. Pure function: no I/O, deterministic for given
// inputs. Callers must reject a non-positive budget before calling.
//
// Reason selection is first-failure-wins in check order. Only the first
// failing check is surfaced even when several fail; the full check list is
// returned alongside so nothing is hidden from callers that want detail.
func Evaluate(vendor models.VendorProfile, project models.ProjectRequirement, technicalScore, financialScore float64, cfg *Config) models.EligibilityVerdict {
	multiple := project.MinTurnoverMultiple
	if multiple <= 0 {
		multiple = cfg.MinTurnoverMultiple
	}
	threshold := cfg.ScoreThreshold

	ratio := vendor.AnnualTurnover / project.Budget

	checks := []models.CheckResult{
		{
			Name:   models.CheckTurnoverAdequate,
			Passed: ratio >= multiple,
			Detail: fmt.Sprintf("turnover ratio %sx, required %sx", formatAmount(displayRatio(ratio, multiple)), formatAmount(multiple)),
		},
		{
			Name:   models.CheckCapabilityMatch,
			Passed: capabilityMatches(vendor.Capability, project.RequiredCapability),
		},
		{
			Name:   models.CheckTechnicalScorePass,
			Passed: technicalScore >= threshold,
			Detail: fmt.Sprintf("score %s, required %s", formatAmount(technicalScore), formatAmount(threshold)),
		},
		{
			Name:   models.CheckFinancialScorePass,
			Passed: financialScore >= threshold,
			Detail: fmt.Sprintf("score %s, required %s", formatAmount(financialScore), formatAmount(threshold)),
		},
	}

	eligible := true
	for _, c := range checks {
		if !c.Passed {
			eligible = false
			break
		}
	}

	return models.EligibilityVerdict{
		Eligible:      eligible,
		Checks:        checks,
		TurnoverRatio: displayRatio(ratio, multiple),
		Reason:        selectReason(checks, ratio, multiple, technicalScore, financialScore, threshold),
	}
}

// capabilityMatches reports whether the vendor's capability label contains
// the required label, case-insensitively. Substring containment is the
// documented behavior; it is permissive ("Civil Construction" covers
// "Construction") and kept as is.
func capabilityMatches(vendorCapability, requiredCapability string) bool {
	return strings.Contains(
		strings.ToLower(vendorCapability),
		strings.ToLower(requiredCapability),
	)
}

// selectReason picks the single surfaced reason: the first failing check in
// order, or the fixed all-criteria-met string.
func selectReason(checks []models.CheckResult, ratio, multiple, technicalScore, financialScore, threshold float64) string {
	for _, c := range checks {
		if c.Passed {
			continue
		}
		switch c.Name {
		case models.CheckTurnoverAdequate:
			return fmt.Sprintf(
				"Annual turnover is %sx of project budget, below the required %sx",
				formatAmount(displayRatio(ratio, multiple)), formatAmount(multiple),
			)
		case models.CheckCapabilityMatch:
			return "Vendor capability does not cover the required project capability"
		case models.CheckTechnicalScorePass:
			return fmt.Sprintf(
				"Technical score %s is below the required minimum of %s",
				formatAmount(technicalScore), formatAmount(threshold),
			)
		case models.CheckFinancialScorePass:
			return fmt.Sprintf(
				"Financial score %s is below the required minimum of %s",
				formatAmount(financialScore), formatAmount(threshold),
			)
		}
	}
	return ReasonAllCriteriaMet
}

// displayRatio rounds the ratio to one decimal for display. When rounding
// would show a failing ratio at or above the requirement (2.99 reads as 3),
// it drops to two truncated decimals so the text cannot contradict the check.
func displayRatio(ratio, multiple float64) float64 {
	rounded := math.Round(ratio*10) / 10
	if ratio < multiple && rounded >= multiple {
		return math.Floor(ratio*100) / 100
	}
	return rounded
}

// formatAmount renders a number without trailing zeros ("2.5", "3", "70").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
