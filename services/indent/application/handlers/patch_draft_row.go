package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	pkgvalidator "github.com/ghuser/indentd/pkg/validator"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// PatchRowRequest is the request body for PATCH /indent/draft/rows/{id}.
// Absent fields are left untouched; an empty item string clears the row's
// selection back to placeholders.
type PatchRowRequest struct {
	Item     *string `json:"item,omitempty"     example:"Basmati Rice"`
	Quantity *string `json:"quantity,omitempty" example:"2.5"`
	Note     *string `json:"note,omitempty"     validate:"omitempty,max=500" example:"for banquet"`
} // @name PatchRowRequest

// PatchDraftRowHandler handles PATCH /indent/draft/rows/{id} requests.
type PatchDraftRowHandler struct {
	svc *appsvcs.Services
}

func NewPatchDraftRowHandler(svc *appsvcs.Services) *PatchDraftRowHandler {
	return &PatchDraftRowHandler{svc: svc}
}

// Execute edits one draft row. Selecting an item snapshots its unit and
// category from the reference dataset; an unknown item leaves the row as it
// was and reports 422.
//
//	@Summary		Edit draft row
//	@Description	Updates the item, quantity or note of one draft row
//	@Tags			draft
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Row id"
//	@Param			request	body		PatchRowRequest	true	"Fields to update"
//	@Success		200		{object}	DraftView
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/indent/draft/rows/{id} [patch]
func (h *PatchDraftRowHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid row id")
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PatchRowRequest](w, r)
	if !ok {
		return
	}
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}

	if req.Item != nil {
		if err := h.svc.Draft.SetItem(r.Context(), draft, id, *req.Item); err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}
	if req.Quantity != nil {
		qty, err := decimal.NewFromString(*req.Quantity)
		if err != nil {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "quantity must be a number")
			return
		}
		if err := h.svc.Draft.SetQuantity(draft, id, qty); err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}
	if req.Note != nil {
		if err := h.svc.Draft.SetNote(draft, id, *req.Note); err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}

	respondDraft(w, r, h.svc, session, draft)
}
