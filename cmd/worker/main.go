package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kirillkom/finreport-qa/internal/bootstrap"
	"github.com/kirillkom/finreport-qa/internal/config"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/queue/nats"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/querylist"
	"github.com/kirillkom/finreport-qa/internal/observability/logging"
)

// The worker runs a batch for every request published on NATS_REQUEST_SUBJECT.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.NATSURL == "" {
		logger.Error("worker_requires_nats", "hint", "set NATS_URL")
		os.Exit(1)
	}

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	defaultQueries, err := querylist.Load(cfg.QueriesFile)
	if err != nil {
		logger.Error("query_list_failed", "error", err)
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           app.Metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSRequestSubject)
	err = app.Queue.SubscribeBatchRequests(ctx, func(handlerCtx context.Context, msg nats.BatchRequestMessage) error {
		req, err := requestFromMessage(cfg, defaultQueries, msg)
		if err != nil {
			return err
		}
		runCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Minute)
		defer cancel()

		result, err := app.BatchUC.Run(runCtx, req)
		if err != nil {
			return err
		}
		logger.Info("batch_request_done", "run_id", result.RunID, "skipped", result.SkippedCount())
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}

func requestFromMessage(cfg config.Config, defaultQueries []string, msg nats.BatchRequestMessage) (domain.BatchRequest, error) {
	if msg.Mode != "" {
		cfg.RankMode = msg.Mode
	}
	if msg.Scope != "" {
		cfg.BatchScope = msg.Scope
	}
	if msg.Strategy != "" {
		cfg.FinancialStrategy = msg.Strategy
	}
	if len(msg.AllowedDocuments) > 0 {
		cfg.AllowedDocuments = msg.AllowedDocuments
	}
	queries := defaultQueries
	if len(msg.Queries) > 0 {
		queries = msg.Queries
	}
	return bootstrap.BatchRequest(cfg, queries)
}
