package usecase

import (
	"context"

	"nexus/internal/domain/entity"
)

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the session token handed to the client after a successful login.
type LoginOutput struct {
	Token   string
	Session *entity.Session
	User    *entity.User
}

// SessionUsecase defines the interface for session management operations.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// CurrentSession resolves a session token to a live session, or fails with ErrNotLoggedIn.
	CurrentSession(ctx context.Context, token string) (*entity.Session, error)

	// Logout invalidates the session behind token. Unknown or invalid tokens are ignored.
	Logout(ctx context.Context, token string) error

	// CleanupExpiredSessions deletes expired sessions and returns how many were removed.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
