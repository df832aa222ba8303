package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

// GetRequestPDFHandler handles GET /indent/requests/{mrn}/pdf requests.
type GetRequestPDFHandler struct {
	svc *appsvcs.Services
}

func NewGetRequestPDFHandler(svc *appsvcs.Services) *GetRequestPDFHandler {
	return &GetRequestPDFHandler{svc: svc}
}

// Execute rebuilds the request from its log rows and downloads it as a PDF.
//
//	@Summary		Download request PDF
//	@Description	Renders the identified request as a printable document
//	@Tags			indent
//	@Produce		application/pdf
//	@Param			mrn	path		string	true	"Request MRN"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/indent/requests/{mrn}/pdf [get]
func (h *GetRequestPDFHandler) Execute(w http.ResponseWriter, r *http.Request) {
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
	payload, err := h.svc.Renderer.Render(indent)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.Attachment(w, "application/pdf", "Indent_"+indent.MRN+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
