// Package auth covers credentials and bearer tokens: password hashing,
// token issue/verify, and the HTTP middleware that resolves the acting user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the process-wide signing parameters. Rotating the secret
// invalidates every outstanding token.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrTokenInvalid covers malformed tokens and signature mismatches.
	ErrTokenInvalid = errors.New("invalid bearer token")
	// ErrTokenExpired is returned for tokens at or past their expiry.
	ErrTokenExpired = errors.New("bearer token expired")
)

// Issue signs a token identifying userID, expiring ttl from now.
func Issue(userID string, cfg Config, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// Verify validates the signature and expiry and returns the user id the
// token was issued for. Expiry is inclusive-past: a token whose expiry
// equals the current instant is already expired, so a zero ttl never
// verifies.
func Verify(token string, cfg Config) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", ErrTokenInvalid
	}
	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return "", ErrTokenInvalid
	}
	if !claims.ExpiresAt.Time.After(time.Now()) {
		return "", ErrTokenExpired
	}
	return claims.Subject, nil
}
