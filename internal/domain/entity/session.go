package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a logged-in caller to a user identity on the server side.
// The client only ever holds a signed token that references ID.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string // Display name captured at login time.
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is no longer valid at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
