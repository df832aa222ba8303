package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/indentd/pkg/app"
	"github.com/ghuser/indentd/pkg/auth"
	"github.com/ghuser/indentd/services/indent/application/handlers"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// IndentRoutes registers indent endpoints on the provided chi router.
// Draft and submit routes run behind the form session middleware; the
// read-only routes do not need it but share it for the cookie refresh.
func IndentRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.WithSession(a.SessionStore, a.Logger))
		r.Route("/indent", func(r chi.Router) {
			r.Route("/draft", func(r chi.Router) {
				r.Get("/", handlers.NewGetDraftHandler(svcs).Execute)
				r.Post("/clear", handlers.NewPostDraftClearHandler(svcs).Execute)
				r.Put("/header", handlers.NewPutDraftHeaderHandler(svcs).Execute)
				r.Route("/rows", func(r chi.Router) {
					r.Post("/", handlers.NewPostDraftRowsHandler(svcs).Execute)
					r.Patch("/{id}", handlers.NewPatchDraftRowHandler(svcs).Execute)
					r.Delete("/{id}", handlers.NewDeleteDraftRowHandler(svcs).Execute)
				})
			})
			r.Post("/submit", handlers.NewPostSubmitHandler(svcs).Execute)

			r.Route("/history", func(r chi.Router) {
				r.Get("/", handlers.NewGetHistoryHandler(svcs).Execute)
				r.Get("/export", handlers.NewGetHistoryExportHandler(svcs).Execute)
			})
			r.Route("/requests/{mrn}", func(r chi.Router) {
				r.Get("/pdf", handlers.NewGetRequestPDFHandler(svcs).Execute)
				r.Get("/share", handlers.NewGetRequestShareHandler(svcs).Execute)
			})
			r.Route("/reference", func(r chi.Router) {
				r.Get("/items", handlers.NewGetReferenceItemsHandler(svcs).Execute)
				r.Post("/import", handlers.NewPostReferenceImportHandler(svcs).Execute)
			})
		})
	})
}
