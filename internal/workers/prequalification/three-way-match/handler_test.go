// internal/workers/prequalification/three-way-match/handler_test.go
package threewaymatch

import (
	"context"
	"testing"
	"time"

	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Tolerance: 0,
		Timeout:   5 * time.Second,
	}
}

type testLogger struct {
	t *testing.T
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

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		invoiceAmount  float64
		poAmount       float64
		expectedStatus string
		expectedDiff   float64
	}{
		{"amounts differ", 5400, 4500, models.MatchStatusMismatch, 900},
		{"amounts equal", 3000, 3000, models.MatchStatusMatch, 0},
		{"invoice below po", 4500, 5400, models.MatchStatusMismatch, 900},
		{"both zero", 0, 0, models.MatchStatusMatch, 0},
		{"fractional difference", 100.50, 100.25, models.MatchStatusMismatch, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), newTestLogger(t))

			output, err := handler.Execute(context.Background(), &Input{
				InvoiceAmount: tt.invoiceAmount,
				POAmount:      tt.poAmount,
			})

			require.NoError(t, err)
			require.NotNil(t, output)
			assert.Equal(t, tt.expectedStatus, output.Status)
			assert.InDelta(t, tt.expectedDiff, output.Difference, 1e-9)
			assert.Equal(t, tt.invoiceAmount, output.InvoiceAmount)
			assert.Equal(t, tt.poAmount, output.POAmount)
		})
	}
}

func TestHandler_Execute_NegativeAmounts(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	for _, input := range []*Input{
		{InvoiceAmount: -1, POAmount: 100},
		{InvoiceAmount: 100, POAmount: -1},
	} {
		output, err := handler.Execute(context.Background(), input)

		require.Error(t, err)
		assert.Nil(t, output)
		stdErr, ok := err.(*errors.StandardError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeInvalidMatchInput, stdErr.Code)
	}
}

// ==========================
// Match Semantics Tests
// ==========================

func TestMatch_Idempotent(t *testing.T) {
	first := Match(5400, 4500, 0)
	second := Match(5400, 4500, 0)

	assert.Equal(t, first, second)
}

func TestMatch_ExactEqualityDefault(t *testing.T) {
	// With the default zero tolerance any difference, however small, is a
	// mismatch.
	verdict := Match(1000.01, 1000.00, 0)

	assert.Equal(t, models.MatchStatusMismatch, verdict.Status)
	assert.InDelta(t, 0.01, verdict.Difference, 1e-9)
	assert.False(t, verdict.Matched())
}

func TestMatch_ConfigurableTolerance(t *testing.T) {
	tests := []struct {
		name           string
		invoice        float64
		po             float64
		tolerance      float64
		expectedStatus string
	}{
		{"within tolerance", 1005, 1000, 10, models.MatchStatusMatch},
		{"at tolerance boundary", 1010, 1000, 10, models.MatchStatusMatch},
		{"beyond tolerance", 1011, 1000, 10, models.MatchStatusMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Match(tt.invoice, tt.po, tt.tolerance)
			assert.Equal(t, tt.expectedStatus, verdict.Status)
		})
	}
}

func TestMatch_DifferenceAlwaysAbsolute(t *testing.T) {
	a := Match(100, 250, 0)
	b := Match(250, 100, 0)

	assert.Equal(t, a.Difference, b.Difference)
	assert.Equal(t, 150.0, a.Difference)
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkMatch(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Match(5400, 4500, 0)
	}
}
