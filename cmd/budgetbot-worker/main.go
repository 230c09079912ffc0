package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budgetbot/internal/amqp"
	"budgetbot/internal/config"
	"budgetbot/internal/export"
	exportgoogle "budgetbot/internal/export/google"
	exportmemory "budgetbot/internal/export/memory"
	"budgetbot/internal/storage"
	"budgetbot/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting budgetbot-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	ledger, err := storage.NewLedger(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open ledger", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer ledger.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	target, err := exportTarget(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize export target", "error", err, "backend", cfg.ExportBackend)
		os.Exit(1)
	}
	logger.Info("Export target ready", "backend", cfg.ExportBackend)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(ledger, target, cfg.ExportBatchSize)

	g, ctx := errgroup.WithContext(ctx)

	// Drain anything that was left pending while the worker was down,
	// then keep consuming live export messages.
	g.Go(func() error {
		if err := exportWorker.StartupCheck(ctx); err != nil {
			logger.Error("Startup export check failed", "error", err)
			// Keep consuming; failed rows stay marked for a retry.
		}
		return nil
	})
	g.Go(func() error {
		return amqpClient.ConsumeTransactionExports(ctx, exportWorker.HandleExportMessage)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}

func exportTarget(ctx context.Context, cfg *config.Config) (export.RowAppender, error) {
	switch cfg.ExportBackend {
	case "sheets":
		return exportgoogle.NewFromEnv(ctx)
	default:
		return exportmemory.New(), nil
	}
}
