// internal/workers/data-access/query-procurement/handler_test.go
package queryprocurement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		CacheTTL: time.Minute,
	}
}

type testLogger struct {
	t testing.TB
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return client, srv
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "vendor profile",
			input: &Input{QueryType: string(models.QueryTypeVendorProfile), VendorID: "VND-1001"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "name", "annual_turnover", "capability", "turnover_by_year",
				}).AddRow(
					"VND-1001", "BuildRight Contractors", 2500000.0, "Road Construction",
					[]byte(`[{"year":2023,"amount":2500000}]`),
				)
				mock.ExpectQuery(`SELECT id, name, annual_turnover, capability, turnover_by_year FROM vendors WHERE id = \$1`).
					WithArgs("VND-1001").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				assert.False(t, output.CacheHit)

				data := output.Data.(map[string]interface{})
				assert.Equal(t, "VND-1001", data["vendorId"])
				assert.Equal(t, "BuildRight Contractors", data["name"])
				assert.Equal(t, 2500000.0, data["annualTurnover"])
				assert.Equal(t, "Road Construction", data["capability"])
			},
		},
		{
			name:  "vendor invoices",
			input: &Input{QueryType: string(models.QueryTypeVendorInvoices), VendorName: "BuildRight Contractors"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "vendor_name", "invoice_amount", "po_amount", "invoice_date", "currency",
				}).AddRow(
					"INV-001", "BuildRight Contractors", 5400.0, 4500.0, "2024-03-15", "USD",
				).AddRow(
					"INV-002", "BuildRight Contractors", 3000.0, 3000.0, "2024-02-01", "USD",
				)
				mock.ExpectQuery(`SELECT id, vendor_name, invoice_amount, po_amount, invoice_date, currency FROM invoices WHERE vendor_name = \$1 ORDER BY invoice_date DESC`).
					WithArgs("BuildRight Contractors").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)

				data := output.Data.([]map[string]interface{})
				assert.Equal(t, "INV-001", data[0]["invoiceId"])
				assert.Equal(t, 5400.0, data[0]["invoiceAmount"])
				assert.Equal(t, 4500.0, data[0]["poAmount"])
				assert.Equal(t, "INV-002", data[1]["invoiceId"])
			},
		},
		{
			name:  "project requirement",
			input: &Input{QueryType: string(models.QueryTypeProjectRequirement), ProjectID: "PRJ-77"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "budget", "required_capability", "min_turnover_multiple",
				}).AddRow(
					"PRJ-77", 1000000.0, "Road Construction", 3.0,
				)
				mock.ExpectQuery(`SELECT id, budget, required_capability, min_turnover_multiple FROM projects WHERE id = \$1`).
					WithArgs("PRJ-77").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.(map[string]interface{})
				assert.Equal(t, "PRJ-77", data["projectId"])
				assert.Equal(t, 1000000.0, data["budget"])
				assert.Equal(t, 3.0, data["minTurnoverMultiple"])
			},
		},
		{
			name:  "evaluation history",
			input: &Input{QueryType: string(models.QueryTypeEvaluationHistory), VendorName: "Apex Construction Ltd"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "scenario_id", "vendor_name", "project_id", "eligible", "match_status", "evaluated_at",
				}).AddRow(
					"eval-1", "clean-pass", "Apex Construction Ltd", "PRJ-77", true, "match", "2024-04-01T10:00:00Z",
				)
				mock.ExpectQuery(`SELECT id, scenario_id, vendor_name, project_id, eligible, match_status, evaluated_at FROM evaluations WHERE vendor_name = \$1 ORDER BY evaluated_at DESC LIMIT 50`).
					WithArgs("Apex Construction Ltd").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.([]map[string]interface{})
				assert.Equal(t, "eval-1", data[0]["evaluationId"])
				assert.Equal(t, true, data[0]["eligible"])
				assert.Equal(t, "match", data[0]["matchStatus"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockQuery(mock)

			handler := NewHandler(createTestConfig(), db, nil, newTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InvalidQueryType(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewHandler(createTestConfig(), db, nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{QueryType: "franchise_full_details"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQueryType))
}

func TestHandler_Execute_NilInput(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewHandler(createTestConfig(), db, nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestHandler_Execute_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, budget, required_capability, min_turnover_multiple FROM projects WHERE id = \$1`).
		WithArgs("PRJ-missing").
		WillReturnError(errors.New("connection reset"))

	handler := NewHandler(createTestConfig(), db, nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeProjectRequirement),
		ProjectID: "PRJ-missing",
	})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueryExecutionFailed))
}

func TestHandler_Execute_Timeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, annual_turnover, capability, turnover_by_year FROM vendors WHERE id = \$1`).
		WithArgs("VND-1001").
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("VND-1001"))

	handler := NewHandler(createTestConfig(), db, nil, newTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	output, err := handler.Execute(ctx, &Input{
		QueryType: string(models.QueryTypeVendorProfile),
		VendorID:  "VND-1001",
	})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueryTimeout))
}

// ==========================
// Cache Tests
// ==========================

func TestHandler_Execute_VendorProfileCacheMissThenHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	client, srv := newTestRedis(t)
	defer client.Close()

	rows := sqlmock.NewRows([]string{
		"id", "name", "annual_turnover", "capability", "turnover_by_year",
	}).AddRow(
		"VND-1002", "Apex Construction Ltd", 2000000.0, "Civil Construction",
		[]byte(`[]`),
	)
	mock.ExpectQuery(`SELECT id, name, annual_turnover, capability, turnover_by_year FROM vendors WHERE id = \$1`).
		WithArgs("VND-1002").
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, client, newTestLogger(t))
	input := &Input{QueryType: string(models.QueryTypeVendorProfile), VendorID: "VND-1002"}

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, srv.Exists("vendor:profile:VND-1002"))

	// Second lookup must come from Redis; no further query is expected on the mock.
	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)

	data := second.Data.(map[string]interface{})
	assert.Equal(t, "Apex Construction Ltd", data["name"])
}

func TestHandler_Execute_CorruptCacheFallsThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	client, srv := newTestRedis(t)
	defer client.Close()
	require.NoError(t, srv.Set("vendor:profile:VND-1003", "not json"))

	rows := sqlmock.NewRows([]string{
		"id", "name", "annual_turnover", "capability", "turnover_by_year",
	}).AddRow(
		"VND-1003", "Meridian Infrastructure", 3000000.0, "Water Infrastructure",
		[]byte(`[]`),
	)
	mock.ExpectQuery(`SELECT id, name, annual_turnover, capability, turnover_by_year FROM vendors WHERE id = \$1`).
		WithArgs("VND-1003").
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, client, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeVendorProfile),
		VendorID:  "VND-1003",
	})

	require.NoError(t, err)
	assert.False(t, output.CacheHit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CachedProfileRoundTrips(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	client, srv := newTestRedis(t)
	defer client.Close()

	profile := map[string]interface{}{
		"vendorId":       "VND-1004",
		"name":           "SteelWorks Fabrication Inc",
		"annualTurnover": 6000000.0,
		"capability":     "Steel Fabrication",
	}
	payload, err := json.Marshal(profile)
	require.NoError(t, err)
	require.NoError(t, srv.Set("vendor:profile:VND-1004", string(payload)))

	handler := NewHandler(createTestConfig(), db, client, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeVendorProfile),
		VendorID:  "VND-1004",
	})

	require.NoError(t, err)
	assert.True(t, output.CacheHit)
	assert.Equal(t, 1, output.RowCount)

	data := output.Data.(map[string]interface{})
	assert.Equal(t, "SteelWorks Fabrication Inc", data["name"])
	assert.Equal(t, 6000000.0, data["annualTurnover"])
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_Execute_VendorProfile(b *testing.B) {
	db, mock, err := sqlmock.New()
	if err != nil {
		b.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	for i := 0; i < b.N; i++ {
		rows := sqlmock.NewRows([]string{
			"id", "name", "annual_turnover", "capability", "turnover_by_year",
		}).AddRow("VND-1001", "BuildRight Contractors", 2500000.0, "Road Construction", []byte(`[]`))
		mock.ExpectQuery(`SELECT id, name, annual_turnover, capability, turnover_by_year FROM vendors WHERE id = \$1`).
			WithArgs("VND-1001").
			WillReturnRows(rows)
	}

	handler := NewHandler(createTestConfig(), db, nil, &testLogger{t: b})
	input := &Input{QueryType: string(models.QueryTypeVendorProfile), VendorID: "VND-1001"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = handler.Execute(context.Background(), input)
	}
}
