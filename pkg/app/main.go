package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/indentd/pkg/cache"
	"github.com/ghuser/indentd/pkg/config"
	"github.com/ghuser/indentd/pkg/database"
	"github.com/ghuser/indentd/pkg/events"
	"github.com/ghuser/indentd/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registrations during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "submitting indent", "mrn", mrn)
//	app.Logger.ErrorContext(ctx, "failed to append", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db           *database.Database
	Config       *config.Config
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store // Redis-backed session store; nil in worker process
}
