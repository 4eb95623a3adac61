// internal/workers/notifications/send-alert/handler.go
package sendalert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-alert"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	sesClient    SESService
	snsClient    SNSService
	templateMap  map[string]map[string]string
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Handler{
		config:       config,
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),
		errorHandler: errors.NewErrorHandler(log),
		sesClient:    ses.NewFromConfig(awsCfg),
		snsClient:    sns.NewFromConfig(awsCfg),
		templateMap:  loadTemplates(),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	template, exists := h.templateMap[input.AlertType]
	if !exists {
		return nil, fmt.Errorf("template not found for alert type: %s", input.AlertType)
	}

	data := map[string]interface{}{
		"evaluationId": input.EvaluationID,
		"vendorName":   input.VendorName,
		"projectId":    input.ProjectID,
		"reason":       input.Reason,
	}
	for k, v := range input.Metadata {
		data[k] = v
	}

	subject := renderTemplate(template["subject"], data)
	body := renderTemplate(template["body"], data)

	alertID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	var channels []string
	var lastErr error
	var failedChannel string

	if h.config.EmailEnabled && h.config.ToEmail != "" {
		if err := h.sendEmail(ctx, h.config.ToEmail, subject, body); err != nil {
			h.logger.Error("email alert failed", map[string]interface{}{
				"error": err,
				"email": h.config.ToEmail,
			})
			lastErr = err
			failedChannel = "email"
		} else {
			channels = append(channels, "email")
		}
	}

	// SMS only goes out for high-priority alerts.
	if h.config.SMSEnabled && h.config.PhoneNumber != "" && input.Priority == "high" {
		if err := h.sendSMS(ctx, h.config.PhoneNumber, body); err != nil {
			h.logger.Error("SMS alert failed", map[string]interface{}{
				"error": err,
				"phone": h.config.PhoneNumber,
			})
			lastErr = err
			failedChannel = "sms"
		} else {
			channels = append(channels, "sms")
		}
	}

	// A channel failure only fails the job if nothing was delivered at all.
	if len(channels) == 0 && lastErr != nil {
		return nil, errors.NewAlertSendFailedError(failedChannel, lastErr)
	}

	status := StatusDisabled
	if len(channels) > 0 {
		status = StatusSent
	}

	h.logger.Info("alert processed", map[string]interface{}{
		"alertId":   alertID,
		"alertType": input.AlertType,
		"status":    status,
		"channels":  channels,
	})

	return &Output{
		AlertID:  alertID,
		Status:   status,
		Channels: channels,
		SentAt:   sentAt,
	}, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func errorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "INTERNAL_ERROR"
}

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remove any remaining placeholders (missing values)
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func loadTemplates() map[string]map[string]string {
	return map[string]map[string]string{
		TypeVendorIneligible: {
			"subject": "Vendor Failed Pre-Qualification",
			"body":    "Vendor {{vendorName}} did not pass pre-qualification for project {{projectId}}. Reason: {{reason}}.",
		},
		TypeAmountMismatch: {
			"subject": "Invoice Amount Mismatch Detected",
			"body":    "Three-way match flagged a discrepancy for vendor {{vendorName}} on evaluation {{evaluationId}}. {{reason}}",
		},
		TypeEvaluationComplete: {
			"subject": "Procurement Evaluation Complete",
			"body":    "Evaluation {{evaluationId}} for vendor {{vendorName}} has finished. {{reason}}",
		},
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
