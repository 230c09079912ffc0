package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budgetbot/internal/amqp"
	"budgetbot/internal/bot"
	"budgetbot/internal/config"
	"budgetbot/internal/services"
	"budgetbot/internal/session"
	"budgetbot/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting budgetbot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ledger, err := storage.NewLedger(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open ledger", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer ledger.Close()

	// The export queue is optional: without AMQP the bot still works,
	// transactions just stay in the pending export state.
	var events services.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("Export queue connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Export queue disabled - no AMQP_URL provided")
	}

	accounting := services.NewAccounting(ledger, events)
	sessions := session.NewManager()

	handler, err := bot.New(cfg.BotToken, cfg.PollTimeout, accounting, sessions)
	if err != nil {
		logger.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go accounting.RunCacheJanitor(ctx, time.Minute)

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
