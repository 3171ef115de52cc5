package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestUserIDContextRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "guest_user")
	if got := UserIDFromContext(ctx); got != "guest_user" {
		t.Fatalf("expected guest_user, got %q", got)
	}
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty user id, got %q", got)
	}
}

func TestUserScopeInjectsRouteParam(t *testing.T) {
	r := chi.NewRouter()
	var seen string
	r.With(UserScope(nil)).Get("/cart/{userId}", func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart/u-42", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen != "u-42" {
		t.Fatalf("expected u-42 in context, got %q", seen)
	}
}

func TestUserScopeRejectsBlankID(t *testing.T) {
	r := chi.NewRouter()
	r.With(UserScope(nil)).Get("/cart/{userId}", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a blank user id")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart/%20", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
