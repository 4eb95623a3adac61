// internal/workers/data-access/query-procurement/handler.go
package queryprocurement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/models"
	"procurement-workers/internal/workers/data-access/query-procurement/queries"
)

const (
	TaskType = "query-procurement"
)

var (
	ErrDatabaseConnectionFailed = errors.New("DATABASE_CONNECTION_FAILED")
	ErrQueryExecutionFailed     = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout             = errors.New("QUERY_TIMEOUT")
	ErrInvalidQueryType         = errors.New("INVALID_QUERY_TYPE")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := "QUERY_EXECUTION_FAILED"
		if errors.Is(err, ErrQueryTimeout) {
			errorCode = "QUERY_TIMEOUT"
		} else if errors.Is(err, ErrInvalidQueryType) {
			errorCode = "INVALID_QUERY_TYPE"
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	queryType := models.QueryType(input.QueryType)
	if _, exists := queries.Registry[queryType]; !exists {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryType, input.QueryType)
	}

	// Vendor profiles change rarely; serve them from Redis when possible.
	if queryType == models.QueryTypeVendorProfile && h.redis != nil && input.VendorID != "" {
		if cached, ok := h.cachedVendorProfile(ctx, input.VendorID); ok {
			return &Output{Data: cached, RowCount: 1, CacheHit: true}, nil
		}
	}

	params := make(map[string]interface{})
	if input.VendorID != "" {
		params["vendorId"] = input.VendorID
	}
	if input.VendorName != "" {
		params["vendorName"] = input.VendorName
	}
	if input.ProjectID != "" {
		params["projectId"] = input.ProjectID
	}
	if input.Filters != nil {
		params["filters"] = input.Filters
	}

	data, rowCount, execTime, err := queries.Execute(ctx, h.db, queryType, params)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrQueryTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	if queryType == models.QueryTypeVendorProfile && h.redis != nil && input.VendorID != "" {
		h.storeVendorProfile(ctx, input.VendorID, data)
	}

	return &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}, nil
}

func (h *Handler) cachedVendorProfile(ctx context.Context, vendorID string) (map[string]interface{}, bool) {
	val, err := h.redis.Get(ctx, vendorCacheKey(vendorID)).Result()
	if err != nil {
		return nil, false
	}
	var profile map[string]interface{}
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, false
	}
	return profile, true
}

func (h *Handler) storeVendorProfile(ctx context.Context, vendorID string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	h.redis.Set(ctx, vendorCacheKey(vendorID), payload, h.config.CacheTTL)
}

func vendorCacheKey(vendorID string) string {
	return "vendor:profile:" + vendorID
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
