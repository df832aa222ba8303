package handlers

import (
	"net/http"

	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// GetDraftHandler handles GET /indent/draft requests.
type GetDraftHandler struct {
	svc *appsvcs.Services
}

func NewGetDraftHandler(svc *appsvcs.Services) *GetDraftHandler {
	return &GetDraftHandler{svc: svc}
}

// Execute returns the session's in-flight draft, creating a fresh one seeded
// with the requester's last-used department and name when none exists.
//
//	@Summary		Get draft
//	@Description	Returns the current draft form state for this session
//	@Tags			draft
//	@Produce		json
//	@Success		200	{object}	DraftView
//	@Failure		500	{object}	ErrorResponse
//	@Router			/indent/draft [get]
func (h *GetDraftHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}
	respondDraft(w, r, h.svc, session, draft)
}
