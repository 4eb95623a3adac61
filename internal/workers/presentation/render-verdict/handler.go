// internal/workers/presentation/render-verdict/handler.go
package renderverdict

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"procurement-workers/internal/common/bridge"
	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "render-verdict"
)

// Pusher delivers directive sets to the active page.
type Pusher interface {
	Push(ctx context.Context, set models.DirectiveSet) error
}

var _ Pusher = (*bridge.Client)(nil)

type Handler struct {
	config       *Config
	bridge       Pusher
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, pusher Pusher, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		bridge:       pusher,
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),
		errorHandler: errors.NewErrorHandler(log),
	}
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

// execute builds the directive set and pushes it once. Missing form elements
// on the target page are a recoverable notice: the job completes with
// FormDetected=false. Delivery failures surface as a non-retryable error so
// the report happens exactly once; the user re-triggers manually if needed.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	set := BuildDirectives(input.EvaluationID, input.Eligibility, input.Match, int(h.config.ToastTTL.Milliseconds()))

	err := h.bridge.Push(ctx, set)
	if err != nil {
		if stdErr, ok := err.(*errors.StandardError); ok && stdErr.Code == errors.ErrCodeFormNotDetected {
			h.logger.Warn("no procurement form on target page", map[string]interface{}{
				"evaluationId": input.EvaluationID,
				"detail":       stdErr.Details,
			})
			metrics.BridgeDeliveries.WithLabelValues("form_not_detected").Inc()
			return &Output{
				Delivered:    true,
				FormDetected: false,
				Notice:       "No procurement form detected on the target page",
				Directives:   set,
			}, nil
		}

		metrics.BridgeDeliveries.WithLabelValues("failed").Inc()
		if stdErr, ok := err.(*errors.StandardError); ok {
			return nil, stdErr
		}
		return nil, errors.NewBridgeDeliveryFailedError(err)
	}

	metrics.BridgeDeliveries.WithLabelValues("delivered").Inc()
	h.logger.Info("verdict rendered", map[string]interface{}{
		"evaluationId": input.EvaluationID,
		"vendor":       input.VendorName,
		"panelState":   set.Panel.State,
	})

	return &Output{
		Delivered:    true,
		FormDetected: true,
		Directives:   set,
	}, nil
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
