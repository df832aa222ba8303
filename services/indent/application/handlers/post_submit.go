package handlers

import (
	"net/http"

	"github.com/ghuser/indentd/pkg/auth"
	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// SubmitResponse is returned on successful submission.
type SubmitResponse struct {
	MRN           string `json:"mrn"            example:"MRN-042"`
	SubmittedAt   string `json:"submitted_at"   example:"2026-08-30 14:02:11"`
	Department    string `json:"department"     example:"Kitchen"`
	RequiredDate  string `json:"required_date"  example:"02-09-2026"`
	RequestedBy   string `json:"requested_by"   example:"A. Sharma"`
	LineCount     int    `json:"line_count"     example:"3"`
	TotalQuantity string `json:"total_quantity" example:"7.5"`
	ShareText     string `json:"share_text"`
	ShareLink     string `json:"share_link"`
} // @name SubmitResponse

// PostSubmitHandler handles POST /indent/submit requests.
type PostSubmitHandler struct {
	svc *appsvcs.Services
}

func NewPostSubmitHandler(svc *appsvcs.Services) *PostSubmitHandler {
	return &PostSubmitHandler{svc: svc}
}

// Execute submits the session's draft: allocates the next MRN, appends the
// request's rows to the log in one batch and resets the draft. Nothing is
// written when any validity gate fails.
//
//	@Summary		Submit indent
//	@Description	Validates the draft, allocates an MRN and appends it to the log
//	@Tags			indent
//	@Produce		json
//	@Success		201	{object}	SubmitResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/indent/submit [post]
func (h *PostSubmitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, draft, ok := sessionDraft(w, r)
	if !ok {
		return
	}

	indent, err := h.svc.Submission.Submit(r.Context(), draft)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	appsvcs.ResetDraftAfterSubmit(session, indent)
	// The indent is already in the log. A failed session save only leaves a
	// stale draft behind, which the next GET /draft recovers from.
	_ = auth.SaveSession(w, r, session)

	httpx.JSON(w, http.StatusCreated, submitResponse(indent))
}

func submitResponse(in *models.Indent) SubmitResponse {
	text, link := appsvcs.ShareMessage(in)
	return SubmitResponse{
		MRN:           in.MRN,
		SubmittedAt:   in.CreatedAt.Format(models.TimestampLayout),
		Department:    in.Department,
		RequiredDate:  in.RequiredDate,
		RequestedBy:   in.RequestedBy,
		LineCount:     len(in.Lines),
		TotalQuantity: in.TotalQuantity().String(),
		ShareText:     text,
		ShareLink:     link,
	}
}
