package repository

import (
	"context"
	"errors"
	"time"

	"nexus/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session record does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the server-side session store: create, read and invalidate.
type SessionRepository interface {
	// Create persists a new session. The caller assigns the ID.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID, returning ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// DeleteByID invalidates a single session. Missing sessions are ignored.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID invalidates every session belonging to a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes sessions whose expiry is not after now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
