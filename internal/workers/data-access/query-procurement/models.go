// internal/workers/data-access/query-procurement/models.go
package queryprocurement

import "procurement-workers/internal/models"

type Input struct {
	QueryType  string                 `json:"queryType"`
	VendorID   string                 `json:"vendorId,omitempty"`
	VendorName string                 `json:"vendorName,omitempty"`
	ProjectID  string                 `json:"projectId,omitempty"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
	CacheHit           bool        `json:"cacheHit"`
}

type QueryType = models.QueryType

var (
	QueryTypeVendorProfile      = models.QueryTypeVendorProfile
	QueryTypeVendorInvoices     = models.QueryTypeVendorInvoices
	QueryTypeProjectRequirement = models.QueryTypeProjectRequirement
	QueryTypeEvaluationHistory  = models.QueryTypeEvaluationHistory
)
