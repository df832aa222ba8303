package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/indentd/pkg/httpx"
	"github.com/ghuser/indentd/pkg/logger"
)

// SessionName is the cookie under which the form session travels.
const SessionName = "indentd_session"

// WithSession is a chi middleware that loads (or creates) the form session
// and injects it into the request context. The session carries the in-flight
// draft and the requester's last-used defaults; handlers retrieve it with
// SessionFromCtx and must call SaveSession after mutating it.
//
// A tampered or expired cookie degrades to a fresh session rather than an
// error: the form must stay usable.
func WithSession(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				// Get only fails on codec errors; a new empty session is
				// still returned and usable.
				log.WarnContext(r.Context(), "invalid session cookie, starting fresh", "error", err)
			}
			if session == nil {
				httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSessionCtx(r.Context(), session)))
		})
	}
}

// SaveSession persists the session and refreshes the cookie. Call after every
// draft mutation.
func SaveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) error {
	return session.Save(r, w)
}
