// internal/gateway/server.go
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"procurement-workers/internal/common/config"
	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/models"
	evaluateeligibility "procurement-workers/internal/workers/prequalification/evaluate-eligibility"
	threewaymatch "procurement-workers/internal/workers/prequalification/three-way-match"
	renderverdict "procurement-workers/internal/workers/presentation/render-verdict"
	providescenario "procurement-workers/internal/workers/scenarios/provide-scenario"
	"procurement-workers/pkg/registry"
)

// DirectiveBridge delivers presentation directives to the ERP page.
type DirectiveBridge interface {
	Push(ctx context.Context, set models.DirectiveSet) error
	Clear(ctx context.Context, evaluationID string) error
}

// Auditor indexes evaluation records without blocking the request path.
type Auditor interface {
	RecordAsync(record models.EvaluationRecord)
}

// Server is the HTTP trigger gateway. It runs evaluations end to end:
// scenario source, eligibility and match evaluation, audit indexing, and
// one-way directive delivery to the page bridge.
type Server struct {
	policy         config.PolicyConfig
	eligibilityCfg *evaluateeligibility.Config
	source         providescenario.Source
	bridge         DirectiveBridge
	auditor        Auditor
	registry       *registry.ActivityRegistry
	logger         logger.Logger
}

func NewServer(
	policy config.PolicyConfig,
	source providescenario.Source,
	bridge DirectiveBridge,
	auditor Auditor,
	reg *registry.ActivityRegistry,
	log logger.Logger,
) *Server {
	if reg == nil {
		reg = &registry.ActivityRegistry{}
	}
	return &Server{
		policy:         policy,
		eligibilityCfg: evaluateeligibility.ConfigFromPolicy(policy),
		source:         source,
		bridge:         bridge,
		auditor:        auditor,
		registry:       reg,
		logger:         log.WithFields(map[string]interface{}{"component": "gateway"}),
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluations", s.handleEvaluate)
		r.Post("/page/clear", s.handlePageClear)
		r.Post("/agent/connect", notImplementedHandler("agent-connectivity"))
		r.Post("/documents/extract", notImplementedHandler("document-extraction"))
		r.Get("/activities", s.handleActivities)
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start serves the router until the listener fails or is closed.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("gateway listening", map[string]interface{}{"address": addr})
	return srv.ListenAndServe()
}

// handleEvaluate is the zero-argument evaluation trigger. The scenario source
// supplies the input; the result is request-scoped and never cached.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, err := s.source.Next(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if input.Project.Budget <= 0 {
		s.writeError(w, errors.NewInvalidProjectBudgetError(input.Project.Budget))
		return
	}

	eligibility := evaluateeligibility.Evaluate(
		input.Vendor, input.Project, input.TechnicalScore, input.FinancialScore, s.eligibilityCfg)
	match := threewaymatch.Match(
		input.Invoice.InvoiceAmount, input.Invoice.POAmount, s.policy.MatchTolerance)

	record := models.EvaluationRecord{
		EvaluationID: uuid.New().String(),
		ScenarioID:   input.ScenarioID,
		VendorName:   input.Vendor.Name,
		ProjectID:    input.Project.ProjectID,
		EvaluatedAt:  time.Now().UTC(),
		Eligibility:  eligibility,
		Match:        match,
	}

	metrics.EvaluationsTotal.WithLabelValues(
		strconv.FormatBool(eligibility.Eligible), match.Status).Inc()

	s.auditor.RecordAsync(record)
	s.deliverDirectives(ctx, record)

	s.logger.Info("evaluation complete", map[string]interface{}{
		"evaluationId": record.EvaluationID,
		"scenarioId":   record.ScenarioID,
		"eligible":     eligibility.Eligible,
		"matchStatus":  match.Status,
	})

	writeJSON(w, http.StatusOK, record)
}

// deliverDirectives pushes the rendered verdict to the page bridge. Delivery
// is one-way: a failure is logged and counted, never surfaced as an
// evaluation failure.
func (s *Server) deliverDirectives(ctx context.Context, record models.EvaluationRecord) {
	set := renderverdict.BuildDirectives(
		record.EvaluationID, record.Eligibility, record.Match, s.policy.ToastTTLMillis)

	err := s.bridge.Push(ctx, set)
	if err == nil {
		metrics.BridgeDeliveries.WithLabelValues("delivered").Inc()
		return
	}

	if stdErr, ok := err.(*errors.StandardError); ok && stdErr.Code == errors.ErrCodeFormNotDetected {
		metrics.BridgeDeliveries.WithLabelValues("form_not_detected").Inc()
		s.logger.Warn("no recognizable form on target page", map[string]interface{}{
			"evaluationId": record.EvaluationID,
		})
		return
	}

	metrics.BridgeDeliveries.WithLabelValues("failed").Inc()
	s.logger.Error("bridge delivery failed", map[string]interface{}{
		"evaluationId": record.EvaluationID,
		"error":        err,
	})
}

type pageClearRequest struct {
	EvaluationID string `json:"evaluationId"`
}

func (s *Server) handlePageClear(w http.ResponseWriter, r *http.Request) {
	var req pageClearRequest
	// An empty body is a valid "clear everything" request.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if err := s.bridge.Clear(r.Context(), req.EvaluationID); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cleared": true})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ready"})
}

// notImplementedHandler answers a declared placeholder endpoint. It reports
// NOT_IMPLEMENTED explicitly instead of pretending the work happened.
func notImplementedHandler(capability string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotImplemented, map[string]interface{}{
			"status":     "NOT_IMPLEMENTED",
			"capability": capability,
			"detail":     "this capability is declared but not yet available in this deployment",
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	stdErr, ok := err.(*errors.StandardError)
	if !ok {
		stdErr = &errors.StandardError{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		}
	}

	s.logger.Error("request failed", map[string]interface{}{
		"code":  stdErr.Code,
		"error": err,
	})

	writeJSON(w, httpStatus(stdErr.Code), map[string]interface{}{"error": stdErr})
}

func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeScenarioUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeInvalidProjectBudget,
		errors.ErrCodeInvalidVendorProfile,
		errors.ErrCodeInvalidMatchInput:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeBridgeDeliveryFailed:
		return http.StatusBadGateway
	case errors.ErrCodeRecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
