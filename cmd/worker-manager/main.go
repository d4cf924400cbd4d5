// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"finanzbot/internal/common/aws"
	"finanzbot/internal/common/camunda"
	"finanzbot/internal/common/config"
	"finanzbot/internal/common/database"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/observability"
	"finanzbot/internal/common/retry"
	"finanzbot/internal/intent"
	"finanzbot/internal/responder"
	"finanzbot/internal/session"
	"finanzbot/pkg/registry"

	// Analysis Workers (2)
	ac "finanzbot/internal/workers/analysis/analyze-company"
	lcp "finanzbot/internal/workers/analysis/load-company-profile"

	// Chat Workers (2)
	cm "finanzbot/internal/workers/chat/classify-message"
	cr "finanzbot/internal/workers/chat/compose-reply"

	// Notification Workers (1)
	sar "finanzbot/internal/workers/notification/send-analysis-report"
)

func main() {
	zapLog := logger.New("info", "console")
	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	if err := cfg.RequireBroker(); err != nil {
		zapLog.Fatal("config incomplete", zap.Error(err))
	}
	if err := cfg.RequirePostgres(); err != nil {
		zapLog.Fatal("config incomplete", zap.Error(err))
	}
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("worker-manager", nil)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry invalid", zap.String("path", cfg.Registry.Path), zap.Error(err))
	}
	zapLog.Info("Activity registry loaded", zap.String("version", reg.Version), zap.Int("activities", len(reg.Activities)))

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retry.WithBackoff(ctx, func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ClientConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retry.WithBackoff(ctx, func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		return nil
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	companies := database.NewCompanies(pg)
	if err := companies.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("company schema migration failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	err = retry.WithBackoff(ctx, func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	// --- Init AWS clients ---
	awsClients, err := aws.NewClients(ctx, cfg.Notification.Region)
	if err != nil {
		zapLog.Fatal("aws clients failed", zap.Error(err))
	}

	classifier := intent.New(intent.Options{
		SimilarityThreshold: cfg.Classifier.SimilarityThreshold,
		OffTopicFilter:      cfg.Classifier.OffTopicFilter,
	})
	svc := session.NewService(session.NewRedisStore(rdb.Client, cfg.Session), classifier, responder.New(nil), log, obs)

	// --- Register Workers ---
	manager := camunda.NewManager(zeebe.GetClient(), obs, zapLog)
	errHandler := apperrors.NewErrorHandler(log)

	start := func(taskType string, handler camunda.HandlerFunc) {
		activity, ok := reg.Find(taskType)
		if !ok || !activity.Deployable() {
			zapLog.Warn("worker not deployable in registry", zap.String("taskType", taskType))
			return
		}
		schema, err := activity.CompileInput()
		if err != nil {
			zapLog.Fatal("input schema failed to compile", zap.String("taskType", taskType), zap.Error(err))
		}
		manager.Start(taskType, config.GetWorkerConfig(cfg, taskType), camunda.ValidateInput(schema, handler, errHandler))
	}

	start(lcp.TaskType, lcp.NewHandler(lcp.LoadConfig(cfg), companies, log).Handle)
	start(ac.TaskType, ac.NewHandler(ac.LoadConfig(cfg), svc, log).Handle)
	start(cm.TaskType, cm.NewHandler(cm.LoadConfig(cfg), log).Handle)
	start(cr.TaskType, cr.NewHandler(cr.LoadConfig(cfg), svc, log).Handle)
	start(sar.TaskType, sar.NewHandler(sar.LoadConfig(cfg), awsClients, log).Handle)

	zapLog.Info("Workers registered", zap.Int("count", manager.Count()))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	manager.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Health/Metrics server shutdown failed", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
