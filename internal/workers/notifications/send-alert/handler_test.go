// internal/workers/notifications/send-alert/handler_test.go
package sendalert

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "noreply@procurement.example.com",
		ToEmail:      "officers@procurement.example.com",
		PhoneNumber:  "+1234567890",
		AWSRegion:    "us-east-1",
		Timeout:      5 * time.Second,
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

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{}, nil
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{}, nil
}

func newHandlerWithMocks(t *testing.T, cfg *Config, sesMock SESService, snsMock SNSService) *Handler {
	return &Handler{
		config:       cfg,
		logger:       newTestLogger(t),
		errorHandler: errors.NewErrorHandler(newTestLogger(t)),
		sesClient:    sesMock,
		snsClient:    snsMock,
		templateMap:  loadTemplates(),
	}
}

func ineligibleInput() *Input {
	return &Input{
		EvaluationID: "eval-20",
		AlertType:    TypeVendorIneligible,
		VendorName:   "BuildRight Contractors",
		ProjectID:    "PRJ-77",
		Reason:       "Annual turnover is 2.5x of project budget, below the required 3x",
		Priority:     "high",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SendsEmailAndSMS(t *testing.T) {
	var emailSubject, emailBody, smsMessage string

	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Equal(t, "officers@procurement.example.com", params.Destination.ToAddresses[0])
			assert.Equal(t, "noreply@procurement.example.com", *params.Source)
			emailSubject = *params.Message.Subject.Data
			emailBody = *params.Message.Body.Text.Data
			return &ses.SendEmailOutput{}, nil
		},
	}
	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			assert.Equal(t, "+1234567890", *params.PhoneNumber)
			smsMessage = *params.Message
			return &sns.PublishOutput{}, nil
		},
	}

	handler := newHandlerWithMocks(t, createTestConfig(), mockSES, mockSNS)

	output, err := handler.Execute(context.Background(), ineligibleInput())

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{"email", "sms"}, output.Channels)
	assert.NotEmpty(t, output.AlertID)
	assert.NotEmpty(t, output.SentAt)

	assert.Equal(t, "Vendor Failed Pre-Qualification", emailSubject)
	assert.Contains(t, emailBody, "BuildRight Contractors")
	assert.Contains(t, emailBody, "PRJ-77")
	assert.Contains(t, emailBody, "2.5x")
	assert.Contains(t, smsMessage, "BuildRight Contractors")
}

func TestHandler_Execute_NormalPrioritySkipsSMS(t *testing.T) {
	smsCalled := false
	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			smsCalled = true
			return &sns.PublishOutput{}, nil
		},
	}

	handler := newHandlerWithMocks(t, createTestConfig(), &MockSESService{}, mockSNS)

	input := ineligibleInput()
	input.Priority = "normal"
	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{"email"}, output.Channels)
	assert.False(t, smsCalled)
}

func TestHandler_Execute_AllChannelsDisabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false

	handler := newHandlerWithMocks(t, cfg, &MockSESService{}, &MockSNSService{})

	output, err := handler.Execute(context.Background(), ineligibleInput())

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, output.Channels)
	assert.NotEmpty(t, output.AlertID)
}

func TestHandler_Execute_UnknownAlertType(t *testing.T) {
	handler := newHandlerWithMocks(t, createTestConfig(), &MockSESService{}, &MockSNSService{})

	input := ineligibleInput()
	input.AlertType = "vendor_birthday"
	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	assert.Error(t, err)
}

// ==========================
// Failure Handling Tests
// ==========================

func TestHandler_Execute_AllChannelsFail(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, stderrors.New("SES unavailable")
		},
	}
	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, stderrors.New("SNS unavailable")
		},
	}

	handler := newHandlerWithMocks(t, createTestConfig(), mockSES, mockSNS)

	output, err := handler.Execute(context.Background(), ineligibleInput())

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAlertSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_EmailFailsSMSDelivers(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, stderrors.New("SES unavailable")
		},
	}

	handler := newHandlerWithMocks(t, createTestConfig(), mockSES, &MockSNSService{})

	output, err := handler.Execute(context.Background(), ineligibleInput())

	// Partial delivery still counts as sent.
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{"sms"}, output.Channels)
}

// ==========================
// Template Rendering Tests
// ==========================

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "all placeholders filled",
			template: "Vendor {{vendorName}} on {{projectId}}",
			data:     map[string]interface{}{"vendorName": "Apex", "projectId": "PRJ-1"},
			expected: "Vendor Apex on PRJ-1",
		},
		{
			name:     "missing placeholder removed",
			template: "Vendor {{vendorName}} reason {{reason}}",
			data:     map[string]interface{}{"vendorName": "Apex"},
			expected: "Vendor Apex reason ",
		},
		{
			name:     "non-string value formatted",
			template: "Difference: {{difference}}",
			data:     map[string]interface{}{"difference": 900.0},
			expected: "Difference: 900",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderTemplate(tt.template, tt.data))
		})
	}
}
