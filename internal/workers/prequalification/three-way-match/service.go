// internal/workers/prequalification/three-way-match/service.go
package threewaymatch

import (
	"math"

	"procurement-workers/internal/models"
)

// Match compares an invoice amount against its purchase-order amount. Within
// tolerance (default exactly equal) the verdict is a match; otherwise a
// mismatch carrying the absolute difference. Pure and deterministic.
func Match(invoiceAmount, poAmount, tolerance float64) models.MatchVerdict {
	diff := math.Abs(invoiceAmount - poAmount)

	status := models.MatchStatusMismatch
	if diff <= tolerance {
		status = models.MatchStatusMatch
	}

	return models.MatchVerdict{
		Status:        status,
		InvoiceAmount: invoiceAmount,
		POAmount:      poAmount,
		Difference:    diff,
	}
}
