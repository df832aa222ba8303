package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/infrastructure/spreadsheet"
)

// GetHistoryExportHandler handles GET /indent/history/export requests.
type GetHistoryExportHandler struct {
	svc *appsvcs.Services
}

func NewGetHistoryExportHandler(svc *appsvcs.Services) *GetHistoryExportHandler {
	return &GetHistoryExportHandler{svc: svc}
}

// Execute downloads the filtered history as an .xlsx workbook. Accepts the
// same query parameters as GET /indent/history.
//
//	@Summary		Export history
//	@Description	Downloads log rows matching the given filters as a spreadsheet
//	@Tags			history
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200	{file}		binary
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/indent/history/export [get]
func (h *GetHistoryExportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, ok := historyFilterFromQuery(w, r, h.svc)
	if !ok {
		return
	}
	rows, err := h.svc.History.Search(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	payload, err := spreadsheet.WriteHistory(rows)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("indent_history_%s.xlsx", time.Now().Format("2006-01-02"))
	httpx.Attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
