package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// ReferenceItemView is one orderable item from the reference dataset.
type ReferenceItemView struct {
	Name        string   `json:"name"         example:"Basmati Rice"`
	Unit        string   `json:"unit"         example:"kg"`
	Category    string   `json:"category"     example:"Groceries"`
	SubCategory string   `json:"sub_category" example:"Grains"`
	Departments []string `json:"departments,omitempty" example:"Kitchen,Bar"`
} // @name ReferenceItemView

// ReferenceItemsResponse lists the orderable items.
type ReferenceItemsResponse struct {
	Items []ReferenceItemView `json:"items"`
	Total int                 `json:"total" example:"120"`
} // @name ReferenceItemsResponse

// GetReferenceItemsHandler handles GET /indent/reference/items requests.
type GetReferenceItemsHandler struct {
	svc *appsvcs.Services
}

func NewGetReferenceItemsHandler(svc *appsvcs.Services) *GetReferenceItemsHandler {
	return &GetReferenceItemsHandler{svc: svc}
}

// Execute lists the reference dataset, optionally narrowed to the items a
// department is permitted to order.
//
//	@Summary		List reference items
//	@Description	Returns the orderable item catalog, optionally per department
//	@Tags			reference
//	@Produce		json
//	@Param			department	query		string	false	"Department name"
//	@Success		200			{object}	ReferenceItemsResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/indent/reference/items [get]
func (h *GetReferenceItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.ReferenceItem
		err   error
	)
	if dept := strings.TrimSpace(r.URL.Query().Get("department")); dept != "" {
		items, err = h.svc.Reference.PermittedItems(r.Context(), dept)
	} else {
		items, err = h.svc.Reference.Items(r.Context())
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views := make([]ReferenceItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ReferenceItemView{
			Name:        item.Name,
			Unit:        item.Unit,
			Category:    item.Category,
			SubCategory: item.SubCategory,
			Departments: item.Departments,
		})
	}
	httpx.JSON(w, http.StatusOK, ReferenceItemsResponse{Items: views, Total: len(views)})
}
