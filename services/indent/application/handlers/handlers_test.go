package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/xuri/excelize/v2"

	"github.com/ghuser/indentd/pkg/auth"
	"github.com/ghuser/indentd/pkg/config"
	"github.com/ghuser/indentd/pkg/logger"
	"github.com/ghuser/indentd/services/indent/application/handlers"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"
	"github.com/ghuser/indentd/services/indent/infrastructure/render"
)

// memStore is an in-memory sessions.Store that hands every request the same
// session, standing in for the Redis-backed store.
type memStore struct {
	session *sessions.Session
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	if m.session == nil {
		return m.New(r, name)
	}
	return m.session, nil
}

func (m *memStore) New(r *http.Request, name string) (*sessions.Session, error) {
	s := sessions.NewSession(m, name)
	s.IsNew = true
	m.session = s
	return s, nil
}

func (m *memStore) Save(r *http.Request, w http.ResponseWriter, s *sessions.Session) error {
	m.session = s
	return nil
}

type fakeIndentLog struct {
	lines     []models.LogLine
	columnErr error
}

func (f *fakeIndentLog) RequestColumn(ctx context.Context) ([]string, error) {
	if f.columnErr != nil {
		return nil, f.columnErr
	}
	column := []string{"MRN"}
	for _, l := range f.lines {
		column = append(column, l.MRN)
	}
	return column, nil
}

func (f *fakeIndentLog) AppendLines(ctx context.Context, indent *models.Indent) error {
	f.lines = append(f.lines, indent.LogLines()...)
	return nil
}

func (f *fakeIndentLog) AllLines(ctx context.Context) ([]models.LogLine, error) {
	return append([]models.LogLine{}, f.lines...), nil
}

func (f *fakeIndentLog) LinesByMRN(ctx context.Context, mrn string) ([]models.LogLine, error) {
	var out []models.LogLine
	for _, l := range f.lines {
		if l.MRN == mrn {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", indentdomain.ErrIndentNotFound, mrn)
	}
	return out, nil
}

type fakeReferenceRepo struct {
	items []models.ReferenceItem
}

func (f *fakeReferenceRepo) All(ctx context.Context) ([]models.ReferenceItem, error) {
	return append([]models.ReferenceItem{}, f.items...), nil
}

func (f *fakeReferenceRepo) ReplaceAll(ctx context.Context, items []models.ReferenceItem) error {
	f.items = items
	return nil
}

type fixture struct {
	router *chi.Mux
	log    *fakeIndentLog
	store  *memStore
}

// newFixture wires the full route tree over in-memory fakes, mirroring the
// layout IndentRoutes registers in production.
func newFixture() *fixture {
	lg := logger.New(&config.Config{LogLevel: "error"})
	repo := &fakeReferenceRepo{items: []models.ReferenceItem{
		models.NewReferenceItem("Basmati Rice", "kg", "Groceries", "Grains", nil),
		models.NewReferenceItem("Lime", "pc", "Beverages", "Garnish", []string{"Bar"}),
		models.NewReferenceItem("Salt", "kg", "Groceries", "Spices", nil),
	}}
	log := &fakeIndentLog{}

	reference := appsvcs.NewReferenceService(repo, nil, lg)
	svcs := &appsvcs.Services{
		Reference:  reference,
		Draft:      appsvcs.NewDraftService(reference),
		Submission: appsvcs.NewSubmissionService(log, reference, lg),
		History:    appsvcs.NewHistoryService(log, nil, 90, lg),
		Renderer:   render.NewPDFRenderer(),
	}

	store := newMemStore()
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.WithSession(store, lg))
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
	return &fixture{router: r, log: log, store: store}
}

// referenceWorkbook builds a two-item reference .xlsx for import tests.
func referenceWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Item Name", "Unit"},
		{"Paneer", "kg"},
		{"Butter", "kg"},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
