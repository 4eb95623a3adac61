// internal/common/bridge/client.go
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/models"
)

// Client delivers directive sets to the ERP page bridge over HTTP. Delivery
// is one-shot: a failed push is reported to the caller exactly once and never
// retried here.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// bridgeResponse is the bridge's acknowledgment payload.
type bridgeResponse struct {
	Applied      bool   `json:"applied"`
	FormDetected bool   `json:"formDetected"`
	Detail       string `json:"detail,omitempty"`
}

// Push sends one directive set. A page without a recognizable form yields a
// FORM_NOT_DETECTED notice so callers can surface it without treating the
// evaluation as failed.
func (c *Client) Push(ctx context.Context, set models.DirectiveSet) error {
	if c.endpoint == "" {
		return errors.NewBridgeDeliveryFailedError(fmt.Errorf("bridge endpoint not configured"))
	}

	body, err := json.Marshal(set)
	if err != nil {
		return errors.NewBridgeDeliveryFailedError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewBridgeDeliveryFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewBridgeDeliveryFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewBridgeDeliveryFailedError(fmt.Errorf("bridge returned status %d", resp.StatusCode))
	}

	var ack bridgeResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ack); err != nil {
			return errors.NewBridgeDeliveryFailedError(fmt.Errorf("malformed bridge acknowledgment: %w", err))
		}
		if !ack.FormDetected {
			return errors.NewFormNotDetectedError(ack.Detail)
		}
	}

	return nil
}

// Clear sends a full clear directive. A missing form is a no-op, not an
// error.
func (c *Client) Clear(ctx context.Context, evaluationID string) error {
	err := c.Push(ctx, models.DirectiveSet{
		EvaluationID: evaluationID,
		ClearAll:     true,
	})
	if stdErr, ok := err.(*errors.StandardError); ok && stdErr.Code == errors.ErrCodeFormNotDetected {
		return nil
	}
	return err
}
