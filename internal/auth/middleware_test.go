package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}
	mw := NewMiddleware(cfg, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected bearer challenge header, got %q", rr.Header().Get("WWW-Authenticate"))
	}
}

func TestMiddlewarePassesVerifiedUserID(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}
	mw := NewMiddleware(cfg, nil)

	token, err := Issue("user-7", cfg, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if seen != "user-7" {
		t.Fatalf("expected user-7 on context, got %q", seen)
	}
}

func TestMiddlewareSkipper(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}
	mw := NewMiddleware(cfg, func(r *http.Request) bool {
		return r.URL.Path == "/healthz"
	})

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, req)

	if !reached {
		t.Fatal("skipper path should bypass authentication")
	}
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}
	mw := NewMiddleware(cfg, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}
