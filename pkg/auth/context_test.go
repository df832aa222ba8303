package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/gorilla/sessions"
)

func TestSessionFromCtx_Missing(t *testing.T) {
	_, err := SessionFromCtx(context.Background())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionFromCtx_RoundTrip(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-key"))
	want := sessions.NewSession(store, SessionName)

	ctx := WithSessionCtx(context.Background(), want)
	got, err := SessionFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatal("expected the same session back from context")
	}
}

func TestSessionFromCtx_NilSession(t *testing.T) {
	ctx := context.WithValue(context.Background(), sessionKey, (*sessions.Session)(nil))
	if _, err := SessionFromCtx(ctx); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for nil session, got %v", err)
	}
}
