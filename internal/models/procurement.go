// internal/models/procurement.go
package models

// DocumentType classifies a procurement document by its content.
type DocumentType string

const (
	DocTypePQForm           DocumentType = "PQ_FORM"
	DocTypeInvoice          DocumentType = "INVOICE"
	DocTypePurchaseOrder    DocumentType = "PURCHASE_ORDER"
	DocTypeDeliveryNote     DocumentType = "DELIVERY_NOTE"
	DocTypeImpairmentForm   DocumentType = "IMPAIRMENT_FORM"
	DocTypeVendorOnboarding DocumentType = "VENDOR_ONBOARDING"
	DocTypeUnknown          DocumentType = "UNKNOWN"
)

// TurnoverEntry is one year of declared annual turnover.
type TurnoverEntry struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// TurnoverCheck is the aggregate-turnover pre-screen on a pre-qualification
// form: the declared years summed against the minimum threshold. It is a
// document-level screen, not the full eligibility verdict.
type TurnoverCheck struct {
	Eligible      bool    `json:"eligible"`
	TotalTurnover float64 `json:"totalTurnover"`
	Reason        string  `json:"reason"`
}

// VendorProfile describes a vendor under pre-qualification review.
// Assessment scores are not part of the profile: they come from a scoring
// subsystem and travel alongside it in EvaluationInput.
type VendorProfile struct {
	VendorID       string          `json:"vendorId,omitempty"`
	Name           string          `json:"name"`
	AnnualTurnover float64         `json:"annualTurnover"`
	Capability     string          `json:"capability"`
	TurnoverByYear []TurnoverEntry `json:"turnoverByYear,omitempty"`
}

// ProjectRequirement describes the project a vendor is evaluated against.
type ProjectRequirement struct {
	ProjectID          string  `json:"projectId,omitempty"`
	Budget             float64 `json:"budget"`
	RequiredCapability string  `json:"requiredCapability"`
	// MinTurnoverMultiple is how many times the budget the vendor's annual
	// turnover must reach. Zero means "use the configured policy default" (3).
	MinTurnoverMultiple float64 `json:"minTurnoverMultiple,omitempty"`
}

// LineItem is one row of an invoice or purchase order table.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// InvoiceRecord carries the amounts compared during a three-way match.
type InvoiceRecord struct {
	InvoiceID     string     `json:"invoiceId,omitempty"`
	VendorName    string     `json:"vendorName,omitempty"`
	InvoiceAmount float64    `json:"invoiceAmount"`
	POAmount      float64    `json:"poAmount"`
	InvoiceDate   string     `json:"invoiceDate,omitempty"` // YYYY-MM-DD
	Currency      string     `json:"currency,omitempty"`
	LineItems     []LineItem `json:"lineItems,omitempty"`
}
