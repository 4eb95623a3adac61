// internal/models/directives.go
package models

// Presentation directives describe what the page bridge should render on the
// ERP form. The engine emits these typed instructions instead of touching the
// page itself; the bridge is the only component that interprets them.

// Panel states.
const (
	PanelStateEligible    = "eligible"
	PanelStateNotEligible = "not-eligible"
	PanelStateCleared     = "cleared"
)

// Field names the bridge recognizes on a conventional procurement form.
const (
	FieldEligibility = "eligibility_status"
	FieldMatchResult = "match_result"
	FieldRemarks     = "remarks"
)

// PanelDirective controls the verdict summary panel.
type PanelDirective struct {
	State      string `json:"state"`
	BadgeText  string `json:"badgeText"`
	BadgeClass string `json:"badgeClass"`
}

// FieldDirective fills one named form input. Clear means the field is emptied
// before the value is applied; DispatchChange asks the bridge to fire the
// page's change event so dependent scripts react.
type FieldDirective struct {
	Field          string `json:"field"`
	Value          string `json:"value"`
	Clear          bool   `json:"clear"`
	DispatchChange bool   `json:"dispatchChange"`
	Emphasis       string `json:"emphasis,omitempty"` // "positive" / "negative"
}

// ToastDirective shows a transient notification. TTLMillis is how long the
// toast stays before its exit transition runs.
type ToastDirective struct {
	Message   string `json:"message"`
	Tone      string `json:"tone"` // "success" / "warning" / "error"
	TTLMillis int    `json:"ttlMs"`
}

// DirectiveSet is one complete instruction batch for the bridge. ClearAll
// resets every managed element and ignores the rest of the set.
type DirectiveSet struct {
	EvaluationID string           `json:"evaluationId,omitempty"`
	ClearAll     bool             `json:"clearAll,omitempty"`
	Panel        *PanelDirective  `json:"panel,omitempty"`
	Fields       []FieldDirective `json:"fields,omitempty"`
	Toast        *ToastDirective  `json:"toast,omitempty"`
}
