package handlers

import (
	"net/http"

	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// PostDraftClearHandler handles POST /indent/draft/clear requests.
type PostDraftClearHandler struct {
	svc *appsvcs.Services
}

func NewPostDraftClearHandler(svc *appsvcs.Services) *PostDraftClearHandler {
	return &PostDraftClearHandler{svc: svc}
}

// Execute resets the draft to a single blank row. Department, required date
// and requester survive the clear.
//
//	@Summary		Clear draft
//	@Description	Replaces all draft rows with one blank row, keeping the header
//	@Tags			draft
//	@Produce		json
//	@Success		200	{object}	DraftView
//	@Failure		500	{object}	ErrorResponse
//	@Router			/indent/draft/clear [post]
func (h *PostDraftClearHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}
	h.svc.Draft.Clear(draft)
	respondDraft(w, r, h.svc, session, draft)
}
