// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeVendorProfile      QueryType = "vendor_profile"
	QueryTypeVendorInvoices     QueryType = "vendor_invoices"
	QueryTypeProjectRequirement QueryType = "project_requirement"
	QueryTypeEvaluationHistory  QueryType = "evaluation_history"
)
