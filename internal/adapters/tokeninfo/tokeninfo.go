// Package tokeninfo decodes bearer tokens for display only. Signatures are not verified;
// the backend remains the authority on whether a token is valid.
package tokeninfo

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info is what could be read from a token.
type Info struct {
	// JWT is false for opaque tokens; the remaining fields are then empty.
	JWT       bool
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect reads the registered claims of a JWT without verifying it.
func Inspect(token string) Info {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Info{}
	}
	info := Info{JWT: true, Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}
