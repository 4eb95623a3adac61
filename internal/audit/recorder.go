// internal/audit/recorder.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"
)

// Recorder writes evaluation records to the audit index. The audit trail is
// advisory: callers that cannot tolerate indexing latency use RecordAsync,
// which logs failures instead of propagating them.
type Recorder struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewRecorder(client *elasticsearch.Client, index string, log logger.Logger) *Recorder {
	return &Recorder{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "audit"}),
	}
}

// Record indexes one evaluation record, keyed by its evaluation ID so
// re-delivery of the same evaluation overwrites rather than duplicates.
func (r *Recorder) Record(ctx context.Context, record models.EvaluationRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.NewAuditIndexFailedError(err)
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(payload),
		r.client.Index.WithDocumentID(record.EvaluationID),
		r.client.Index.WithContext(ctx),
	)
	if err != nil {
		return errors.NewAuditIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewAuditIndexFailedError(fmt.Errorf("index response: %s", res.Status()))
	}

	r.logger.Debug("evaluation recorded", map[string]interface{}{
		"evaluationId": record.EvaluationID,
		"index":        r.index,
	})
	return nil
}

// RecordAsync indexes without blocking the caller. Failures are logged only.
func (r *Recorder) RecordAsync(record models.EvaluationRecord) {
	go func() {
		if err := r.Record(context.Background(), record); err != nil {
			r.logger.Error("audit indexing failed", map[string]interface{}{
				"evaluationId": record.EvaluationID,
				"error":        err,
			})
		}
	}()
}
