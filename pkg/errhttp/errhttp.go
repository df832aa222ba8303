// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/indentd/pkg/httpx"
	indentdomain "github.com/ghuser/indentd/services/indent/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, indentdomain.ErrIndentNotFound),
		errors.Is(err, indentdomain.ErrRowNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, indentdomain.ErrItemNotFound),
		errors.Is(err, indentdomain.ErrDuplicateItems),
		errors.Is(err, indentdomain.ErrNoValidLines),
		errors.Is(err, indentdomain.ErrDepartmentRequired),
		errors.Is(err, indentdomain.ErrInvalidDepartment),
		errors.Is(err, indentdomain.ErrRequesterRequired),
		errors.Is(err, indentdomain.ErrPastRequiredDate),
		errors.Is(err, indentdomain.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, indentdomain.ErrAllocatorUnavailable),
		errors.Is(err, indentdomain.ErrReferenceUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
