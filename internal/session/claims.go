package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int    `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the access token without verifying its signature.
// The client has no HMAC key and no business verifying — the backend does
// that on every request; this is display/gating data only.
func DecodeClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed, with a small
// leeway so a token about to expire is treated as already gone.
func (c *Claims) Expired(now time.Time) bool {
	const leeway = 30 * time.Second
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now.Add(leeway))
}
