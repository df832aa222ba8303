package auth

import (
	"context"
	"errors"

	"github.com/gorilla/sessions"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const sessionKey contextKey = "session"

// ErrSessionNotFound is returned when no session exists in the request context,
// which means WithSession middleware did not run for this route.
var ErrSessionNotFound = errors.New("session not found in context")

// SessionFromCtx extracts the form session placed in the context by WithSession.
func SessionFromCtx(ctx context.Context) (*sessions.Session, error) {
	s, ok := ctx.Value(sessionKey).(*sessions.Session)
	if !ok || s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// WithSessionCtx returns a new context with the given session attached.
func WithSessionCtx(ctx context.Context, s *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}
