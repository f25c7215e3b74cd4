package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}

	token, err := Issue("user-1", cfg, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	userID, err := Verify(token, cfg)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1 got %s", userID)
	}
}

func TestTokenZeroTTLExpiresImmediately(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}

	token, err := Issue("user-1", cfg, 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := Verify(token, cfg); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired got %v", err)
	}
}

func TestTokenExpiredAfterTTL(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}

	token, err := Issue("user-1", cfg, -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := Verify(token, cfg); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}

	token, err := Issue("user-1", cfg, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := Config{Secret: "different-secret", Issuer: "workout.test"}
	if _, err := Verify(token, other); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}

	if _, err := Verify("not-a-token", cfg); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid got %v", err)
	}
}

func TestTokenIssuerMismatch(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "workout.test"}

	token, err := Issue("user-1", Config{Secret: "test-secret", Issuer: "someone.else"}, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := Verify(token, cfg); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid got %v", err)
	}
}
