package domain

import (
	"errors"
	"time"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")
var ErrRefreshTokenExpired = errors.New("refresh token expired")
var ErrTokenVerificationFailed = errors.New("token verification failed")

// RefreshToken is a persisted, single-use credential. The opaque value
// carries no semantics of its own; it is only a lookup key into the
// store. A token is valid iff it exists and ExpiresAt is in the future.
type RefreshToken struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
