package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token. Token is what the client holds; ID is
// internal.
type Session struct {
	CreatedRecord
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Active reports whether the session still authenticates at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

func (s *Session) Revoke(now time.Time) {
	s.RevokedAt = &now
}
