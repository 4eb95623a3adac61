// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"procurement-workers/internal/audit"
	"procurement-workers/internal/common/bridge"
	"procurement-workers/internal/common/config"
	"procurement-workers/internal/common/database"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/observability"
	"procurement-workers/internal/gateway"
	"procurement-workers/pkg/registry"

	// Data Access Workers (1)
	qp "procurement-workers/internal/workers/data-access/query-procurement"

	// Document Workers (1)
	ed "procurement-workers/internal/workers/documents/extract-document"

	// Pre-Qualification Workers (2)
	ee "procurement-workers/internal/workers/prequalification/evaluate-eligibility"
	twm "procurement-workers/internal/workers/prequalification/three-way-match"

	// Presentation Workers (1)
	rv "procurement-workers/internal/workers/presentation/render-verdict"

	// Scenario Workers (1)
	ps "procurement-workers/internal/workers/scenarios/provide-scenario"

	// Notification Workers (1)
	sa "procurement-workers/internal/workers/notifications/send-alert"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared Components ---
	bridgeClient := bridge.NewClient(cfg.Bridge.Endpoint, config.GetDuration(cfg.Bridge.Timeout))
	auditRecorder := audit.NewRecorder(esClient.Client, cfg.Database.Elasticsearch.AuditIndex, log)
	scenarioSource := ps.NewCatalogSource()

	activityRegistry, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("activity registry not loaded, /api/v1/activities will be empty",
			zap.String("path", cfg.Registry.Path), zap.Error(err))
		activityRegistry = nil
	} else if err := activityRegistry.Validate(); err != nil {
		zapLog.Fatal("activity registry validation failed", zap.Error(err))
	}

	// --- START: Register ALL 7 Workers ---

	// --- 1. Pre-Qualification Workers (2) ---
	if cfg.Workers[ee.TaskType].Enabled {
		eeCfg := ee.ConfigFromPolicy(cfg.Policy)
		if cfg.Workers[ee.TaskType].Timeout > 0 {
			eeCfg.Timeout = config.GetDuration(cfg.Workers[ee.TaskType].Timeout)
		}
		handler := ee.NewHandler(eeCfg, log)
		startWorker(zeebeClient, ee.TaskType, cfg.Workers[ee.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[twm.TaskType].Enabled {
		twmCfg := twm.ConfigFromPolicy(cfg.Policy)
		if cfg.Workers[twm.TaskType].Timeout > 0 {
			twmCfg.Timeout = config.GetDuration(cfg.Workers[twm.TaskType].Timeout)
		}
		handler := twm.NewHandler(twmCfg, log)
		startWorker(zeebeClient, twm.TaskType, cfg.Workers[twm.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Scenario Workers (1) ---
	if cfg.Workers[ps.TaskType].Enabled {
		handler := ps.NewHandler(ps.LoadConfig(), scenarioSource, log)
		startWorker(zeebeClient, ps.TaskType, cfg.Workers[ps.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Presentation Workers (1) ---
	if cfg.Workers[rv.TaskType].Enabled {
		handler := rv.NewHandler(rv.ConfigFromPolicy(cfg.Policy), bridgeClient, log)
		startWorker(zeebeClient, rv.TaskType, cfg.Workers[rv.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Data Access Workers (1) ---
	if cfg.Workers[qp.TaskType].Enabled {
		qpCfg := qp.LoadConfig()
		if cfg.Workers[qp.TaskType].Timeout > 0 {
			qpCfg.Timeout = config.GetDuration(cfg.Workers[qp.TaskType].Timeout)
		}
		handler := qp.NewHandler(qpCfg, pg.DB, redisClient.Client, log)
		startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	// --- 5. Document Workers (1) ---
	if cfg.Workers[ed.TaskType].Enabled {
		handler := ed.NewHandler(ed.LoadConfig(), log)
		startWorker(zeebeClient, ed.TaskType, cfg.Workers[ed.TaskType], handler.Handle, zapLog)
	}

	// --- 6. Notification Workers (1) ---
	if cfg.Workers[sa.TaskType].Enabled {
		handler, err := sa.NewHandler(sa.ConfigFromNotifications(cfg.Notifications), log)
		if err != nil {
			zapLog.Fatal("failed to create send-alert handler", zap.Error(err))
		}
		startWorker(zeebeClient, sa.TaskType, cfg.Workers[sa.TaskType], handler.Handle, zapLog)
	}
	zapLog.Info("All 7 workers registered successfully")

	// --- HTTP Gateway (evaluations, page clear, activities, health, metrics) ---
	gw := gateway.NewServer(cfg.Policy, scenarioSource, bridgeClient, auditRecorder, activityRegistry, log)
	go func() {
		if err := gw.Start(cfg.Gateway.ListenAddress); err != nil {
			zapLog.Error("gateway server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
