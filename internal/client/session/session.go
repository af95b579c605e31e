// Package session holds the authenticated identity between runs. The session
// is persisted locally with a rolling expiry so a returning user within the
// window is recognized without logging in again; an expired or missing
// session simply yields the logged-out state.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/common"
)

// Session is a persisted authenticated identity.
type Session struct {
	Token     string
	User      api.User
	SavedAt   time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// NewSession builds a session from a login result, expiring after the
// standard persistence window. A token carrying an earlier exp claim
// shortens the window: there is no point remembering a token the server
// will reject.
func NewSession(payload api.AuthPayload, now time.Time) Session {
	expires := now.Add(common.SessionTTL)
	if exp, ok := tokenExpiry(payload.AccessToken); ok && exp.Before(expires) {
		expires = exp
	}
	return Session{
		Token:     payload.AccessToken,
		User:      payload.User,
		SavedAt:   now,
		ExpiresAt: expires,
	}
}

// tokenExpiry extracts the exp claim without verifying the signature. The
// client has no key material; verification is the server's job.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
