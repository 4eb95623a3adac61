// internal/workers/presentation/render-verdict/service.go
package renderverdict

import (
	"fmt"

	"procurement-workers/internal/models"
)

// BuildDirectives maps an eligibility/match verdict pair to the typed
// instruction set the page bridge applies. Every field directive clears the
// target input before writing and dispatches the page's change event so
// host-page listeners observe the update. Emphasis mirrors the verdict:
// positive styling for pass outcomes, negative for failures.
func BuildDirectives(evaluationID string, eligibility models.EligibilityVerdict, match models.MatchVerdict, toastTTL int) models.DirectiveSet {
	panel := &models.PanelDirective{
		State:      models.PanelStateNotEligible,
		BadgeText:  "Not Eligible",
		BadgeClass: "badge-danger",
	}
	eligibilityEmphasis := "negative"
	if eligibility.Eligible {
		panel.State = models.PanelStateEligible
		panel.BadgeText = "Eligible"
		panel.BadgeClass = "badge-success"
		eligibilityEmphasis = "positive"
	}

	matchValue := "Matched"
	matchEmphasis := "positive"
	toastTone := "success"
	if !match.Matched() {
		matchValue = fmt.Sprintf("Mismatch (difference %.2f)", match.Difference)
		matchEmphasis = "negative"
		toastTone = "warning"
	}
	if !eligibility.Eligible {
		toastTone = "warning"
	}

	fields := []models.FieldDirective{
		{
			Field:          models.FieldEligibility,
			Value:          panel.BadgeText,
			Clear:          true,
			DispatchChange: true,
			Emphasis:       eligibilityEmphasis,
		},
		{
			Field:          models.FieldMatchResult,
			Value:          matchValue,
			Clear:          true,
			DispatchChange: true,
			Emphasis:       matchEmphasis,
		},
		{
			Field:          models.FieldRemarks,
			Value:          eligibility.Reason,
			Clear:          true,
			DispatchChange: true,
		},
	}

	return models.DirectiveSet{
		EvaluationID: evaluationID,
		Panel:        panel,
		Fields:       fields,
		Toast: &models.ToastDirective{
			Message:   toastMessage(eligibility, match),
			Tone:      toastTone,
			TTLMillis: toastTTL,
		},
	}
}

func toastMessage(eligibility models.EligibilityVerdict, match models.MatchVerdict) string {
	if eligibility.Eligible && match.Matched() {
		return "Evaluation complete: vendor eligible, amounts match"
	}
	if !eligibility.Eligible && !match.Matched() {
		return "Evaluation complete: vendor not eligible, amounts mismatch"
	}
	if !eligibility.Eligible {
		return "Evaluation complete: vendor not eligible"
	}
	return "Evaluation complete: invoice and purchase order amounts mismatch"
}
