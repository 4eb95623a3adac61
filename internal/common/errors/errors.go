// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Business rule and infrastructure error codes.
const (
	ErrCodeInvalidProjectBudget ErrorCode = "INVALID_PROJECT_BUDGET"
	ErrCodeInvalidVendorProfile ErrorCode = "INVALID_VENDOR_PROFILE"
	ErrCodeInvalidMatchInput    ErrorCode = "INVALID_MATCH_INPUT"

	ErrCodeScenarioUnavailable ErrorCode = "SCENARIO_UNAVAILABLE"

	ErrCodeExtractionFailed        ErrorCode = "EXTRACTION_FAILED"
	ErrCodeUnsupportedDocumentType ErrorCode = "UNSUPPORTED_DOCUMENT_TYPE"
	ErrCodeDocumentPayloadInvalid  ErrorCode = "DOCUMENT_PAYLOAD_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeRecordNotFound           ErrorCode = "RECORD_NOT_FOUND"

	ErrCodeAuditIndexFailed ErrorCode = "AUDIT_INDEX_FAILED"

	ErrCodeFormNotDetected       ErrorCode = "FORM_NOT_DETECTED"
	ErrCodeBridgeDeliveryFailed  ErrorCode = "BRIDGE_DELIVERY_FAILED"
	ErrCodeUnknownDirectiveState ErrorCode = "UNKNOWN_DIRECTIVE_STATE"

	ErrCodeAlertSendFailed ErrorCode = "ALERT_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidProjectBudgetError creates a non-retryable budget validation error.
// A zero or negative budget makes the turnover ratio undefined, so evaluation
// must fail loudly instead of producing a verdict.
func NewInvalidProjectBudgetError(budget float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProjectBudget,
		Message:   "Project budget must be a positive amount",
		Details:   fmt.Sprintf("budget: %v", budget),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidVendorProfileError creates a non-retryable vendor validation error.
func NewInvalidVendorProfileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidVendorProfile,
		Message:   "Vendor profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMatchInputError creates a non-retryable match input error.
func NewInvalidMatchInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMatchInput,
		Message:   "Three-way match input failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScenarioUnavailableError creates a retryable scenario source error.
func NewScenarioUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScenarioUnavailable,
		Message:   "Scenario source could not produce an evaluation input",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a non-retryable document extraction error.
func NewExtractionFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Document field extraction failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedDocumentTypeError creates a non-retryable document type error.
func NewUnsupportedDocumentTypeError(docType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedDocumentType,
		Message:   "Document type is not supported by the extractor",
		Details:   fmt.Sprintf("documentType: %s", docType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentPayloadInvalidError creates a non-retryable payload schema error.
func NewDocumentPayloadInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentPayloadInvalid,
		Message:   "Document payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryTypeError creates a non-retryable invalid query type error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unsupported query type",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable lookup error.
func NewRecordNotFoundError(entity, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   fmt.Sprintf("%s not found", entity),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditIndexFailedError creates a retryable audit indexing error.
func NewAuditIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditIndexFailed,
		Message:   "Failed to index evaluation record",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFormNotDetectedError creates a non-retryable notice for pages without a
// recognizable procurement form. Callers treat this as a recoverable
// condition, not a failure.
func NewFormNotDetectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFormNotDetected,
		Message:   "No procurement form detected on the target page",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBridgeDeliveryFailedError creates a non-retryable bridge delivery error.
// Directive delivery is one-shot: the failure is reported once and never
// retried.
func NewBridgeDeliveryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBridgeDeliveryFailed,
		Message:   "Failed to deliver directives to the page bridge",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownDirectiveStateError creates a non-retryable directive state error.
func NewUnknownDirectiveStateError(state string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownDirectiveState,
		Message:   "Unknown presentation directive state",
		Details:   fmt.Sprintf("state: %s", state),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlertSendFailedError creates a retryable alert delivery error.
func NewAlertSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertSendFailed,
		Message:   "Alert delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. The codes
// are identical on both sides so process models can reference them directly.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidProjectBudget:     "INVALID_PROJECT_BUDGET",
	ErrCodeInvalidVendorProfile:     "INVALID_VENDOR_PROFILE",
	ErrCodeInvalidMatchInput:        "INVALID_MATCH_INPUT",
	ErrCodeScenarioUnavailable:      "SCENARIO_UNAVAILABLE",
	ErrCodeExtractionFailed:         "EXTRACTION_FAILED",
	ErrCodeUnsupportedDocumentType:  "UNSUPPORTED_DOCUMENT_TYPE",
	ErrCodeDocumentPayloadInvalid:   "DOCUMENT_PAYLOAD_INVALID",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeInvalidQueryType:         "INVALID_QUERY_TYPE",
	ErrCodeRecordNotFound:           "RECORD_NOT_FOUND",
	ErrCodeAuditIndexFailed:         "AUDIT_INDEX_FAILED",
	ErrCodeFormNotDetected:          "FORM_NOT_DETECTED",
	ErrCodeBridgeDeliveryFailed:     "BRIDGE_DELIVERY_FAILED",
	ErrCodeUnknownDirectiveState:    "UNKNOWN_DIRECTIVE_STATE",
	ErrCodeAlertSendFailed:          "ALERT_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeAuditIndexFailed,
		ErrCodeAlertSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeScenarioUnavailable:
		return 2 // Partial retry for timeouts and transient sources

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "BUDGET") || strings.Contains(codeStr, "VENDOR") || strings.Contains(codeStr, "MATCH"):
		return "PREQUALIFICATION"
	case strings.Contains(codeStr, "SCENARIO"):
		return "SCENARIO"
	case strings.Contains(codeStr, "EXTRACTION") || strings.Contains(codeStr, "DOCUMENT"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "RECORD"):
		return "DATABASE"
	case strings.Contains(codeStr, "AUDIT"):
		return "AUDIT"
	case strings.Contains(codeStr, "FORM") || strings.Contains(codeStr, "BRIDGE") || strings.Contains(codeStr, "DIRECTIVE"):
		return "PRESENTATION"
	case strings.Contains(codeStr, "ALERT"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
