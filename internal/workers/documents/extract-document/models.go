// internal/workers/documents/extract-document/models.go
package extractdocument

import "procurement-workers/internal/models"

type Input struct {
	DocumentID string `json:"documentId,omitempty"`
	// Text is the raw text layer of the document, as produced by the
	// upstream PDF pipeline.
	Text string `json:"text"`
	// Tables holds row-major table cells extracted alongside the text.
	Tables [][][]string `json:"tables,omitempty"`
	// TypeHint forces the document type instead of detecting it.
	TypeHint string `json:"typeHint,omitempty"`
}

type Output struct {
	DocumentID     string                 `json:"documentId,omitempty"`
	DocumentType   models.DocumentType    `json:"documentType"`
	VendorName     string                 `json:"vendorName,omitempty"`
	TaxID          string                 `json:"taxId,omitempty"`
	InvoiceNumber  string                 `json:"invoiceNumber,omitempty"`
	PONumber       string                 `json:"poNumber,omitempty"`
	InvoiceDate    string                 `json:"invoiceDate,omitempty"` // YYYY-MM-DD
	TotalAmount    float64                `json:"totalAmount,omitempty"`
	Currency       string                 `json:"currency,omitempty"`
	TurnoverByYear []models.TurnoverEntry `json:"turnoverByYear,omitempty"`
	TurnoverCheck  *models.TurnoverCheck  `json:"turnoverCheck,omitempty"`
	LineItems      []models.LineItem      `json:"lineItems,omitempty"`
}
