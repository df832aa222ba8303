package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// ShareResponse carries the pre-formatted share message for a request.
type ShareResponse struct {
	MRN  string `json:"mrn"  example:"MRN-042"`
	Text string `json:"text"`
	Link string `json:"link"`
} // @name ShareResponse

// GetRequestShareHandler handles GET /indent/requests/{mrn}/share requests.
type GetRequestShareHandler struct {
	svc *appsvcs.Services
}

func NewGetRequestShareHandler(svc *appsvcs.Services) *GetRequestShareHandler {
	return &GetRequestShareHandler{svc: svc}
}

// Execute returns the shareable summary text and messaging link for a
// submitted request.
//
//	@Summary		Share request
//	@Description	Returns the share message and link for the identified request
//	@Tags			indent
//	@Produce		json
//	@Param			mrn	path		string	true	"Request MRN"
//	@Success		200	{object}	ShareResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/indent/requests/{mrn}/share [get]
func (h *GetRequestShareHandler) Execute(w http.ResponseWriter, r *http.Request) {
	mrn := strings.TrimSpace(chi.URLParam(r, "mrn"))
	if mrn == "" {
		httpx.JSONError(w, http.StatusBadRequest, "mrn is required")
		return
	}
	indent, err := h.svc.History.RequestByMRN(r.Context(), mrn, h.svc.Reference)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	text, link := appsvcs.ShareMessage(indent)
	httpx.JSON(w, http.StatusOK, ShareResponse{MRN: indent.MRN, Text: text, Link: link})
}
