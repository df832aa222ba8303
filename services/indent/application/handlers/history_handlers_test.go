package handlers_test

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/indentd/services/indent/application/handlers"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

func seedLog(f *fixture) {
	f.log.lines = []models.LogLine{
		{MRN: "MRN-001", Timestamp: "2026-08-01 09:00:00", RequestedBy: "A. Sharma", Department: "Kitchen", RequiredDate: "05-08-2026", Item: "Basmati Rice", Qty: "2.5", Unit: "kg", Note: "N/A"},
		{MRN: "MRN-002", Timestamp: "2026-08-10 11:30:00", RequestedBy: "B. Rao", Department: "Bar", RequiredDate: "12-08-2026", Item: "Lime", Qty: "30", Unit: "pc", Note: "N/A"},
	}
}

func TestGetHistory_filters(t *testing.T) {
	f := newFixture()
	seedLog(f)

	w := do(t, f, http.MethodGet, "/indent/history?department=Kitchen&from=01-08-2026&to=31-08-2026", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history = %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Rows[0].MRN != "MRN-001" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetHistory_badDate(t *testing.T) {
	f := newFixture()
	w := do(t, f, http.MethodGet, "/indent/history?from=2026-08-01", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date = %d, want 400", w.Code)
	}
}

func TestGetHistoryExport(t *testing.T) {
	f := newFixture()
	seedLog(f)

	w := do(t, f, http.MethodGet, "/indent/history/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	// xlsx payloads are zip archives.
	if body := w.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Error("export body is not a zip archive")
	}
}

func TestGetRequestPDF(t *testing.T) {
	f := newFixture()
	seedLog(f)

	w := do(t, f, http.MethodGet, "/indent/requests/MRN-001/pdf", "")
	if w.Code != http.StatusOK {
		t.Fatalf("pdf = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Indent_MRN-001.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("body is not a PDF")
	}

	if w := do(t, f, http.MethodGet, "/indent/requests/MRN-999/pdf", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown mrn = %d, want 404", w.Code)
	}
}

func TestGetRequestShare(t *testing.T) {
	f := newFixture()
	seedLog(f)

	w := do(t, f, http.MethodGet, "/indent/requests/MRN-002/share", "")
	if w.Code != http.StatusOK {
		t.Fatalf("share = %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.ShareResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MRN != "MRN-002" || !strings.Contains(resp.Text, "Bar") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetReferenceItems(t *testing.T) {
	f := newFixture()

	var resp handlers.ReferenceItemsResponse
	w := do(t, f, http.MethodGet, "/indent/reference/items", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3", resp.Total)
	}

	w = do(t, f, http.MethodGet, "/indent/reference/items?department=Kitchen", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Lime is Bar-only; the other two are unrestricted.
	if resp.Total != 2 {
		t.Errorf("Kitchen Total = %d, want 2", resp.Total)
	}
}

func TestPostReferenceImport(t *testing.T) {
	f := newFixture()

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "reference.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(referenceWorkbook(t)); err != nil {
		t.Fatal(err)
	}
	mw.Close() //nolint:errcheck

	r := httptest.NewRequest(http.MethodPost, "/indent/reference/import", strings.NewReader(body.String()))
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("import = %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.ImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Imported != 2 {
		t.Errorf("Imported = %d, want 2", resp.Imported)
	}
}

func TestPostReferenceImport_notMultipart(t *testing.T) {
	f := newFixture()
	w := do(t, f, http.MethodPost, "/indent/reference/import", `{"not":"a file"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-multipart import = %d, want 400", w.Code)
	}
}
