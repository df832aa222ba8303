package handlers

import (
	"net/http"

	"github.com/ghuser/indentd/pkg/errhttp"
	pkgvalidator "github.com/ghuser/indentd/pkg/validator"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// PutHeaderRequest is the request body for PUT /indent/draft/header.
// Absent fields are left untouched.
type PutHeaderRequest struct {
	Department   *string `json:"department,omitempty"    example:"Kitchen"`
	RequiredDate *string `json:"required_date,omitempty" example:"15-09-2026"`
	RequestedBy  *string `json:"requested_by,omitempty"  validate:"omitempty,max=255" example:"A. Sharma"`
} // @name PutHeaderRequest

// PutDraftHeaderHandler handles PUT /indent/draft/header requests.
type PutDraftHeaderHandler struct {
	svc *appsvcs.Services
}

func NewPutDraftHeaderHandler(svc *appsvcs.Services) *PutDraftHeaderHandler {
	return &PutDraftHeaderHandler{svc: svc}
}

// Execute updates the draft header. Switching department resets every row's
// selection, since the permitted item list changes with it.
//
//	@Summary		Update draft header
//	@Description	Sets department, required date or requester on the draft
//	@Tags			draft
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PutHeaderRequest	true	"Header fields"
//	@Success		200		{object}	DraftView
//	@Failure		422		{object}	ErrorResponse
//	@Router			/indent/draft/header [put]
func (h *PutDraftHeaderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PutHeaderRequest](w, r)
	if !ok {
		return
	}
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}

	if req.Department != nil {
		if err := h.svc.Draft.SetDepartment(draft, *req.Department); err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}
	if req.RequiredDate != nil {
		if err := h.svc.Draft.SetRequiredDate(draft, *req.RequiredDate); err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}
	if req.RequestedBy != nil {
		h.svc.Draft.SetRequestedBy(draft, *req.RequestedBy)
	}

	respondDraft(w, r, h.svc, session, draft)
}
