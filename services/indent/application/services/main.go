package services

import (
	"github.com/ghuser/indentd/pkg/app"
	"github.com/ghuser/indentd/pkg/cache"
	"github.com/ghuser/indentd/services/indent/domain/models"
	"github.com/ghuser/indentd/services/indent/infrastructure/persistence/postgres"
	"github.com/ghuser/indentd/services/indent/infrastructure/render"
)

// DocumentRenderer turns a submitted indent into a downloadable document.
type DocumentRenderer interface {
	Render(in *models.Indent) ([]byte, error)
}

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Reference  *ReferenceService
	Draft      *DraftService
	Submission *SubmissionService
	History    *HistoryService
	Renderer   DocumentRenderer
}

// New wires all indent application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	logRepo := postgres.NewIndentLogRepository(a.Db, a.EventBus)
	refRepo := postgres.NewReferenceRepository(a.Db)

	var refCache *cache.ReferenceCache
	var histCache *cache.HistoryCache
	if a.Redis != nil {
		refCache = cache.NewReferenceCache(a.Redis, a.Config.ReferenceCacheTTL)
		histCache = cache.NewHistoryCache(a.Redis, a.Config.HistoryCacheTTL)
	}

	reference := NewReferenceService(refRepo, refCache, a.Logger)
	return &Services{
		Reference:  reference,
		Draft:      NewDraftService(reference),
		Submission: NewSubmissionService(logRepo, reference, a.Logger),
		History:    NewHistoryService(logRepo, histCache, a.Config.HistoryWindowDays, a.Logger),
		Renderer:   render.NewPDFRenderer(),
	}
}
