// internal/workers/data-access/query-procurement/queries/vendor.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

func VendorProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	vendorID, ok := params["vendorId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, name, capability string
	var annualTurnover float64
	var turnoverByYear []byte

	err := db.QueryRowContext(ctx, `
		SELECT id, name, annual_turnover, capability, turnover_by_year
		FROM vendors
		WHERE id = $1`, vendorID).Scan(
		&id, &name, &annualTurnover,
		&capability, &turnoverByYear,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	var history []map[string]interface{}
	if err := json.Unmarshal(turnoverByYear, &history); err != nil {
		history = nil
	}

	result := map[string]interface{}{
		"vendorId":       id,
		"name":           name,
		"annualTurnover": annualTurnover,
		"capability":     capability,
		"turnoverByYear": history,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func VendorInvoices(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	vendorName, ok := params["vendorName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, vendor_name, invoice_amount, po_amount, invoice_date, currency
		FROM invoices
		WHERE vendor_name = $1
		ORDER BY invoice_date DESC`, vendorName)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, name, invoiceDate, currency string
		var invoiceAmount, poAmount float64
		err := rows.Scan(&id, &name, &invoiceAmount, &poAmount, &invoiceDate, &currency)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"invoiceId":     id,
			"vendorName":    name,
			"invoiceAmount": invoiceAmount,
			"poAmount":      poAmount,
			"invoiceDate":   invoiceDate,
			"currency":      currency,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
