// internal/workers/prequalification/three-way-match/validation.go
package threewaymatch

import (
	"fmt"

	"procurement-workers/internal/common/errors"
)

// validateInput rejects negative currency amounts.
func validateInput(input *Input) *errors.StandardError {
	if input.InvoiceAmount < 0 {
		return errors.NewInvalidMatchInputError(
			fmt.Sprintf("invoice amount must not be negative, got %v", input.InvoiceAmount))
	}
	if input.POAmount < 0 {
		return errors.NewInvalidMatchInputError(
			fmt.Sprintf("purchase order amount must not be negative, got %v", input.POAmount))
	}
	return nil
}
