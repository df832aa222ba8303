package handlers

import (
	"net/http"

	"github.com/ghuser/indentd/pkg/errhttp"
	pkgvalidator "github.com/ghuser/indentd/pkg/validator"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// AddRowsRequest is the request body for POST /indent/draft/rows.
type AddRowsRequest struct {
	Count int `json:"count" validate:"required,min=1,max=20" example:"1"`
} // @name AddRowsRequest

// PostDraftRowsHandler handles POST /indent/draft/rows requests.
type PostDraftRowsHandler struct {
	svc *appsvcs.Services
}

func NewPostDraftRowsHandler(svc *appsvcs.Services) *PostDraftRowsHandler {
	return &PostDraftRowsHandler{svc: svc}
}

// Execute appends blank rows to the draft.
//
//	@Summary		Add draft rows
//	@Description	Appends the given number of blank rows to the draft
//	@Tags			draft
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddRowsRequest	true	"Row count"
//	@Success		200		{object}	DraftView
//	@Failure		422		{object}	ErrorResponse
//	@Router			/indent/draft/rows [post]
func (h *PostDraftRowsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddRowsRequest](w, r)
	if !ok {
		return
	}
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}
	if err := h.svc.Draft.AddRows(draft, req.Count); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	respondDraft(w, r, h.svc, session, draft)
}
