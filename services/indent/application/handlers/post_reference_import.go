package handlers

import (
	"net/http"

	"github.com/ghuser/indentd/pkg/errhttp"
	"github.com/ghuser/indentd/pkg/httpx"
	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/infrastructure/spreadsheet"
)

// maxImportSize bounds the uploaded workbook to 10 MiB.
const maxImportSize = 10 << 20

// ImportResponse reports the outcome of a reference import.
type ImportResponse struct {
	Imported int `json:"imported" example:"120"`
} // @name ImportResponse

// PostReferenceImportHandler handles POST /indent/reference/import requests.
type PostReferenceImportHandler struct {
	svc *appsvcs.Services
}

func NewPostReferenceImportHandler(svc *appsvcs.Services) *PostReferenceImportHandler {
	return &PostReferenceImportHandler{svc: svc}
}

// Execute replaces the reference dataset from an uploaded .xlsx workbook.
// Duplicate item names keep the first occurrence; the cache is invalidated
// on success.
//
//	@Summary		Import reference dataset
//	@Description	Replaces the orderable item catalog from a spreadsheet upload
//	@Tags			reference
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Reference workbook (.xlsx)"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/indent/reference/import [post]
func (h *PostReferenceImportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "expected a multipart upload")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close() //nolint:errcheck

	items, err := spreadsheet.ReadReferenceItems(file)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "could not read workbook: "+err.Error())
		return
	}
	count, err := h.svc.Reference.Import(r.Context(), items)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ImportResponse{Imported: count})
}
