// internal/workers/data-access/query-procurement/queries/project.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func ProjectRequirement(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	projectID, ok := params["projectId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, requiredCapability string
	var budget, minTurnoverMultiple float64

	err := db.QueryRowContext(ctx, `
		SELECT id, budget, required_capability, min_turnover_multiple
		FROM projects
		WHERE id = $1`, projectID).Scan(
		&id, &budget, &requiredCapability, &minTurnoverMultiple,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"projectId":           id,
		"budget":              budget,
		"requiredCapability":  requiredCapability,
		"minTurnoverMultiple": minTurnoverMultiple,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func EvaluationHistory(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	vendorName, ok := params["vendorName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, scenario_id, vendor_name, project_id, eligible, match_status, evaluated_at
		FROM evaluations
		WHERE vendor_name = $1
		ORDER BY evaluated_at DESC
		LIMIT 50`, vendorName)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, scenarioID, name, projectID, matchStatus, evaluatedAt string
		var eligible bool
		err := rows.Scan(&id, &scenarioID, &name, &projectID, &eligible, &matchStatus, &evaluatedAt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"evaluationId": id,
			"scenarioId":   scenarioID,
			"vendorName":   name,
			"projectId":    projectID,
			"eligible":     eligible,
			"matchStatus":  matchStatus,
			"evaluatedAt":  evaluatedAt,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
