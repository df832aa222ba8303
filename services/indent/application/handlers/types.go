package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/indentd/pkg/auth"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"department is required"`
} // @name ErrorResponse

// DraftRowView is one editable row of the draft form.
type DraftRowView struct {
	ID          uuid.UUID `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	Item        string    `json:"item"         example:"Basmati Rice"`
	Quantity    string    `json:"quantity"     example:"2.5"`
	Unit        string    `json:"unit"         example:"kg"`
	Note        string    `json:"note"         example:"for banquet"`
	Category    string    `json:"category"     example:"Groceries"`
	SubCategory string    `json:"sub_category" example:"Grains"`
} // @name DraftRowView

// DraftView is the full state of the in-flight draft, validity included.
type DraftView struct {
	Department     string         `json:"department"      example:"Kitchen"`
	RequiredDate   string         `json:"required_date"   example:"15-09-2026"`
	RequestedBy    string         `json:"requested_by"    example:"A. Sharma"`
	Rows           []DraftRowView `json:"rows"`
	HasDuplicates  bool           `json:"has_duplicates"`
	DuplicateItems []string       `json:"duplicate_items,omitempty"`
	HasValidLine   bool           `json:"has_valid_line"`
} // @name DraftView

// HistoryRowView is one typed row of the history view.
type HistoryRowView struct {
	MRN          string `json:"mrn"           example:"MRN-042"`
	SubmittedAt  string `json:"submitted_at"  example:"2026-08-30 14:02:11"`
	RequestedBy  string `json:"requested_by"  example:"A. Sharma"`
	Department   string `json:"department"    example:"Kitchen"`
	RequiredDate string `json:"required_date" example:"02-09-2026"`
	Item         string `json:"item"          example:"Basmati Rice"`
	Qty          string `json:"qty"           example:"2.5"`
	Unit         string `json:"unit"          example:"kg"`
	Note         string `json:"note"          example:"for banquet"`
} // @name HistoryRowView

// sessionDraft pulls the form session and its draft out of the request
// context. A missing session is a wiring error (the routes run behind
// auth.WithSession), reported as 500.
func sessionDraft(w http.ResponseWriter, r *http.Request) (*sessions.Session, *models.Draft, bool) {
	session, err := auth.SessionFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "session unavailable")
		return nil, nil, false
	}
	return session, appsvcs.DraftFromSession(session), true
}

// respondDraft saves the mutated draft back to the session and writes the
// current draft view.
func respondDraft(w http.ResponseWriter, r *http.Request, svc *appsvcs.Services, session *sessions.Session, d *models.Draft) {
	appsvcs.SaveDraft(session, d)
	if err := auth.SaveSession(w, r, session); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	httpx.JSON(w, http.StatusOK, draftView(svc, d))
}

func draftView(svc *appsvcs.Services, d *models.Draft) DraftView {
	v := svc.Draft.Validity(d)
	rows := make([]DraftRowView, 0, len(d.Rows))
	for _, row := range d.Rows {
		rows = append(rows, DraftRowView{
			ID:          row.ID,
			Item:        row.ItemName,
			Quantity:    row.Quantity.String(),
			Unit:        row.Unit,
			Note:        row.Note,
			Category:    row.Category,
			SubCategory: row.SubCategory,
		})
	}
	return DraftView{
		Department:     d.Department,
		RequiredDate:   d.RequiredDate,
		RequestedBy:    d.RequestedBy,
		Rows:           rows,
		HasDuplicates:  v.HasDuplicates,
		DuplicateItems: v.DuplicateNames,
		HasValidLine:   v.HasValidLine,
	}
}

func historyRowViews(rows []appsvcs.HistoryRow) []HistoryRowView {
	views := make([]HistoryRowView, 0, len(rows))
	for _, row := range rows {
		view := HistoryRowView{
			MRN:         row.MRN,
			RequestedBy: row.RequestedBy,
			Department:  row.Department,
			Item:        row.Item,
			Qty:         row.Qty.String(),
			Unit:        row.Unit,
			Note:        row.Note,
		}
		if !row.SubmittedAt.IsZero() {
			view.SubmittedAt = row.SubmittedAt.Format(models.TimestampLayout)
		}
		if !row.RequiredDate.IsZero() {
			view.RequiredDate = row.RequiredDate.Format(models.RequiredDateLayout)
		}
		views = append(views, view)
	}
	return views
}
