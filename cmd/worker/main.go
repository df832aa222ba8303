package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/indentd/pkg/app"
	"github.com/ghuser/indentd/pkg/cache"
	"github.com/ghuser/indentd/pkg/config"
	"github.com/ghuser/indentd/pkg/database"
	"github.com/ghuser/indentd/pkg/events"
	"github.com/ghuser/indentd/pkg/logger"
	"github.com/ghuser/indentd/pkg/telemetry"
	indentEvents "github.com/ghuser/indentd/services/indent/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, indentEvents.TopicIndentSubmitted, handleIndentSubmitted(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", indentEvents.TopicIndentSubmitted,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{indentEvents.TopicIndentSubmitted})
	return nil
}

// handleIndentSubmitted returns a handler for indent.submitted events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Drops the cached history view so the next load sees the new rows.
func handleIndentSubmitted(a *app.Application) func(context.Context, *message.Message) error {
	historyCache := cache.NewHistoryCache(a.Redis, a.Config.HistoryCacheTTL)
	return func(ctx context.Context, msg *message.Message) error {
		var evt indentEvents.IndentSubmittedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := historyCache.Invalidate(ctx); err != nil {
			// Invalidation is best-effort; the cache TTL bounds staleness.
			a.Logger.WarnContext(ctx, "history cache invalidation failed",
				"mrn", evt.MRN, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "history cache invalidated",
				"mrn", evt.MRN, "department", evt.Department, "lines", evt.LineCount)
		}

		return nil
	}
}
