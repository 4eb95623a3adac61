// internal/workers/notifications/send-alert/models.go
package sendalert

type Input struct {
	EvaluationID string                 `json:"evaluationId"`
	AlertType    string                 `json:"alertType"`
	VendorName   string                 `json:"vendorName,omitempty"`
	ProjectID    string                 `json:"projectId,omitempty"`
	Reason       string                 `json:"reason,omitempty"`
	Priority     string                 `json:"priority,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	AlertID  string   `json:"alertId"`
	Status   string   `json:"status"` // "sent", "disabled"
	Channels []string `json:"channels,omitempty"`
	SentAt   string   `json:"sentAt"` // ISO 8601
}

// Alert types
const (
	TypeVendorIneligible   = "vendor_ineligible"
	TypeAmountMismatch     = "amount_mismatch"
	TypeEvaluationComplete = "evaluation_complete"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)
