package services

import (
	"fmt"
	"net/url"

	"github.com/ghuser/indentd/services/indent/domain/models"
)

// ShareMessage composes the pre-filled text announcing a submitted indent and
// the messaging deep link carrying it. The rendered document is not attached
// automatically; the sender attaches it by hand.
func ShareMessage(in *models.Indent) (text, link string) {
	text = fmt.Sprintf(
		"Material Indent %s | Department: %s | Requested By: %s | Date Required: %s | %d item(s)",
		in.MRN, in.Department, in.RequestedBy, in.RequiredDate, len(in.Lines),
	)
	link = "https://wa.me/?text=" + url.QueryEscape(text)
	return text, link
}
