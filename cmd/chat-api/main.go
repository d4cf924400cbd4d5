// cmd/chat-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finanzbot/internal/api"
	"finanzbot/internal/common/config"
	"finanzbot/internal/common/database"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/observability"
	"finanzbot/internal/common/retry"
	"finanzbot/internal/intent"
	"finanzbot/internal/responder"
	"finanzbot/internal/session"
)

func main() {
	zapLog := logger.New("info", "console")
	zapLog.Info("Starting chat API...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("chat-api", nil)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Redis (session store) ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	err = retry.WithBackoff(ctx, func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	store := session.NewRedisStore(rdb.Client, cfg.Session)
	classifier := intent.New(intent.Options{
		SimilarityThreshold: cfg.Classifier.SimilarityThreshold,
		OffTopicFilter:      cfg.Classifier.OffTopicFilter,
	})
	svc := session.NewService(store, classifier, responder.New(nil), log, obs)

	gin.SetMode(cfg.API.Mode)
	router := api.NewRouter(api.NewHandler(svc, log), rdb.Ping, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	zapLog.Info("Chat API stopped")
}
