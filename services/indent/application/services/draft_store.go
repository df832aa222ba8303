package services

import (
	"encoding/gob"

	"github.com/gorilla/sessions"

	"github.com/ghuser/indentd/services/indent/domain/models"
)

// Session value keys for the draft and the requester's last-used defaults.
const (
	sessionDraftKey       = "indent_draft"
	sessionLastDeptKey    = "last_department"
	sessionLastRequestKey = "last_requested_by"
)

func init() {
	// Drafts travel through the gob-encoded session store.
	gob.Register(&models.Draft{})
}

// DraftFromSession returns the session's draft, creating a fresh one seeded
// with the last-used department and requester when none exists yet.
func DraftFromSession(session *sessions.Session) *models.Draft {
	if d, ok := session.Values[sessionDraftKey].(*models.Draft); ok && d != nil {
		if len(d.Rows) == 0 {
			d.AddRows(1)
		}
		return d
	}
	d := models.NewDraft(lastString(session, sessionLastDeptKey))
	d.RequestedBy = lastString(session, sessionLastRequestKey)
	session.Values[sessionDraftKey] = d
	return d
}

// SaveDraft writes the draft back into the session values. The caller is
// responsible for saving the session itself.
func SaveDraft(session *sessions.Session, d *models.Draft) {
	session.Values[sessionDraftKey] = d
}

// ResetDraftAfterSubmit replaces the draft with a single blank row, keeping
// the submitted department and requester as defaults for the next request.
func ResetDraftAfterSubmit(session *sessions.Session, submitted *models.Indent) *models.Draft {
	session.Values[sessionLastDeptKey] = submitted.Department
	session.Values[sessionLastRequestKey] = submitted.RequestedBy

	d := &models.Draft{Department: submitted.Department, RequestedBy: submitted.RequestedBy}
	d.AddRows(1)
	session.Values[sessionDraftKey] = d
	return d
}

func lastString(session *sessions.Session, key string) string {
	if s, ok := session.Values[key].(string); ok {
		return s
	}
	return ""
}
