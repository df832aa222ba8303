package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/indentd/services/indent/application/handlers"
)

func do(t *testing.T, f *fixture, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func draftFrom(t *testing.T, w *httptest.ResponseRecorder) handlers.DraftView {
	t.Helper()
	var v handlers.DraftView
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode draft view: %v\nbody: %s", err, w.Body.String())
	}
	return v
}

func TestDraftLifecycle(t *testing.T) {
	f := newFixture()

	w := do(t, f, http.MethodGet, "/indent/draft", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET draft = %d: %s", w.Code, w.Body.String())
	}
	view := draftFrom(t, w)
	if len(view.Rows) != 5 {
		t.Fatalf("fresh draft has %d rows, want 5", len(view.Rows))
	}

	w = do(t, f, http.MethodPost, "/indent/draft/rows", `{"count":2}`)
	if view = draftFrom(t, w); len(view.Rows) != 7 {
		t.Fatalf("after add: %d rows, want 7", len(view.Rows))
	}

	w = do(t, f, http.MethodDelete, "/indent/draft/rows/"+view.Rows[6].ID.String(), "")
	if view = draftFrom(t, w); len(view.Rows) != 6 {
		t.Fatalf("after delete: %d rows, want 6", len(view.Rows))
	}

	w = do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[0].ID.String(),
		`{"item":"basmati rice","quantity":"2.5","note":"for banquet"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH row = %d: %s", w.Code, w.Body.String())
	}
	view = draftFrom(t, w)
	row := view.Rows[0]
	if row.Item != "Basmati Rice" || row.Unit != "kg" || row.Quantity != "2.5" {
		t.Errorf("row after patch = %+v", row)
	}
	if !view.HasValidLine {
		t.Error("HasValidLine = false after resolving a row")
	}

	w = do(t, f, http.MethodPost, "/indent/draft/clear", "")
	if view = draftFrom(t, w); len(view.Rows) != 1 || view.Rows[0].Item != "" {
		t.Errorf("after clear: %+v", view.Rows)
	}
}

func TestDraftRow_unknownItem(t *testing.T) {
	f := newFixture()
	view := draftFrom(t, do(t, f, http.MethodGet, "/indent/draft", ""))

	w := do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[0].ID.String(), `{"item":"Unobtainium"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown item = %d, want 422", w.Code)
	}
}

func TestDraftHeader_duplicateFlag(t *testing.T) {
	f := newFixture()
	view := draftFrom(t, do(t, f, http.MethodGet, "/indent/draft", ""))

	do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[0].ID.String(), `{"item":"Salt"}`)
	w := do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[1].ID.String(), `{"item":"Salt"}`)

	if view = draftFrom(t, w); !view.HasDuplicates {
		t.Error("HasDuplicates = false for repeated item")
	} else if len(view.DuplicateItems) != 1 || view.DuplicateItems[0] != "Salt" {
		t.Errorf("DuplicateItems = %v", view.DuplicateItems)
	}
}

func TestDraftHeader_departmentSwitchResetsRows(t *testing.T) {
	f := newFixture()
	view := draftFrom(t, do(t, f, http.MethodGet, "/indent/draft", ""))
	do(t, f, http.MethodPut, "/indent/draft/header", `{"department":"Kitchen"}`)
	do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[0].ID.String(), `{"item":"Salt"}`)

	w := do(t, f, http.MethodPut, "/indent/draft/header", `{"department":"Bar"}`)
	view = draftFrom(t, w)
	if view.Department != "Bar" {
		t.Errorf("Department = %q", view.Department)
	}
	if view.Rows[0].Item != "" {
		t.Error("department switch kept the old selection")
	}

	w = do(t, f, http.MethodPut, "/indent/draft/header", `{"department":"Cafeteria"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown department = %d, want 422", w.Code)
	}
}

func TestSubmitFlow(t *testing.T) {
	f := newFixture()
	view := draftFrom(t, do(t, f, http.MethodGet, "/indent/draft", ""))

	do(t, f, http.MethodPut, "/indent/draft/header",
		`{"department":"Kitchen","required_date":"31-12-2099","requested_by":"A. Sharma"}`)
	do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[0].ID.String(), `{"item":"Salt"}`)
	do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[1].ID.String(), `{"item":"Basmati Rice","quantity":"2.5"}`)

	w := do(t, f, http.MethodPost, "/indent/submit", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("submit = %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MRN != "MRN-001" || resp.LineCount != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.HasPrefix(resp.ShareLink, "https://wa.me/?text=") {
		t.Errorf("ShareLink = %q", resp.ShareLink)
	}
	if len(f.log.lines) != 2 {
		t.Errorf("stored %d log lines, want 2", len(f.log.lines))
	}

	// Draft reset with defaults retained.
	view = draftFrom(t, do(t, f, http.MethodGet, "/indent/draft", ""))
	if len(view.Rows) != 1 || view.Department != "Kitchen" || view.RequestedBy != "A. Sharma" {
		t.Errorf("draft after submit = %+v", view)
	}
}

func TestSubmit_emptyDraftRejected(t *testing.T) {
	f := newFixture()
	do(t, f, http.MethodGet, "/indent/draft", "")

	w := do(t, f, http.MethodPost, "/indent/submit", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("submit empty draft = %d, want 422", w.Code)
	}
	if len(f.log.lines) != 0 {
		t.Error("log written for rejected submission")
	}
}

func TestSubmit_allocatorUnavailable(t *testing.T) {
	f := newFixture()
	view := draftFrom(t, do(t, f, http.MethodGet, "/indent/draft", ""))
	do(t, f, http.MethodPut, "/indent/draft/header", `{"department":"Kitchen","requested_by":"A. Sharma"}`)
	do(t, f, http.MethodPatch, "/indent/draft/rows/"+view.Rows[0].ID.String(), `{"item":"Salt"}`)

	f.log.columnErr = errors.New("log store offline")
	w := do(t, f, http.MethodPost, "/indent/submit", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("submit = %d, want 503", w.Code)
	}
}
