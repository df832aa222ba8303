package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// HistoryResponse is the filtered history view.
type HistoryResponse struct {
	Rows  []HistoryRowView `json:"rows"`
	Total int              `json:"total" example:"42"`
} // @name HistoryResponse

// GetHistoryHandler handles GET /indent/history requests.
type GetHistoryHandler struct {
	svc *appsvcs.Services
}

func NewGetHistoryHandler(svc *appsvcs.Services) *GetHistoryHandler {
	return &GetHistoryHandler{svc: svc}
}

// Execute returns past indent rows, newest window first. Without from/to the
// trailing default window applies; explicit bounds are inclusive.
//
//	@Summary		View history
//	@Description	Returns log rows matching the given filters
//	@Tags			history
//	@Produce		json
//	@Param			from		query		string	false	"Start date (DD-MM-YYYY), inclusive"
//	@Param			to			query		string	false	"End date (DD-MM-YYYY), inclusive"
//	@Param			department	query		string	false	"Comma-separated department names"
//	@Param			requested_by	query	string	false	"Comma-separated requester names"
//	@Param			mrn			query		string	false	"MRN substring, case-insensitive"
//	@Param			item		query		string	false	"Item substring, case-insensitive"
//	@Success		200			{object}	HistoryResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/indent/history [get]
func (h *GetHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, ok := historyFilterFromQuery(w, r, h.svc)
	if !ok {
		return
	}
	rows, err := h.svc.History.Search(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, HistoryResponse{Rows: historyRowViews(rows), Total: len(rows)})
}

// historyFilterFromQuery builds a HistoryFilter from query parameters,
// starting from the default trailing window when neither bound is given.
// Writes a 400 and returns false on a malformed date.
func historyFilterFromQuery(w http.ResponseWriter, r *http.Request, svc *appsvcs.Services) (appsvcs.HistoryFilter, bool) {
	q := r.URL.Query()

	var filter appsvcs.HistoryFilter
	if q.Get("from") == "" && q.Get("to") == "" {
		filter = svc.History.DefaultFilter(time.Now())
	} else {
		var ok bool
		if filter.From, ok = parseQueryDate(w, q.Get("from"), "from"); !ok {
			return filter, false
		}
		if filter.To, ok = parseQueryDate(w, q.Get("to"), "to"); !ok {
			return filter, false
		}
	}
	filter.Departments = splitQueryList(q.Get("department"))
	filter.Requesters = splitQueryList(q.Get("requested_by"))
	filter.MRNQuery = strings.TrimSpace(q.Get("mrn"))
	filter.ItemQuery = strings.TrimSpace(q.Get("item"))
	return filter, true
}

func parseQueryDate(w http.ResponseWriter, raw, name string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(models.RequiredDateLayout, raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, name+" must be a DD-MM-YYYY date")
		return time.Time{}, false
	}
	return t, true
}

func splitQueryList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
