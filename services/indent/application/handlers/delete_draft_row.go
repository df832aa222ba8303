package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// DeleteDraftRowHandler handles DELETE /indent/draft/rows/{id} requests.
type DeleteDraftRowHandler struct {
	svc *appsvcs.Services
}

func NewDeleteDraftRowHandler(svc *appsvcs.Services) *DeleteDraftRowHandler {
	return &DeleteDraftRowHandler{svc: svc}
}

// Execute removes one row from the draft. Removing the last row leaves the
// draft with a single blank row, never empty.
//
//	@Summary		Remove draft row
//	@Description	Removes the identified row from the draft
//	@Tags			draft
//	@Produce		json
//	@Param			id	path		string	true	"Row id"
//	@Success		200	{object}	DraftView
//	@Failure		404	{object}	ErrorResponse
//	@Router			/indent/draft/rows/{id} [delete]
func (h *DeleteDraftRowHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid row id")
		return
	}
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}
	if err := h.svc.Draft.RemoveRow(draft, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	respondDraft(w, r, h.svc, session, draft)
}
