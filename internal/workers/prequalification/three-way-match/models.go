// internal/workers/prequalification/three-way-match/models.go
package threewaymatch

import "procurement-workers/internal/models"

type Input struct {
	InvoiceAmount float64 `json:"invoiceAmount"`
	POAmount      float64 `json:"poAmount"`
}

type Output struct {
	models.MatchVerdict
}
