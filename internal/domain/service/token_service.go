package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the claims carried by a session token.
// The token only references the server-side session; it grants nothing on its own.
type SessionClaims struct {
	SessionID uuid.UUID `json:"sid"`
	UserID    uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// SessionTokenService signs and verifies the tokens handed to clients for their sessions.
type SessionTokenService interface {
	// Issue signs a token for the given session that expires at expiresAt.
	Issue(sessionID, userID uuid.UUID, expiresAt time.Time) (string, error)

	// Parse verifies the signature and expiry of a token and returns its claims.
	Parse(token string) (*SessionClaims, error)
}
