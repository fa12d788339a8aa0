package memory

import (
	"context"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"

	"github.com/google/uuid"
)

type sessionRepository struct {
	store  *Store
	locked bool
}

// NewSessionRepository returns a SessionRepository backed by the given store.
func NewSessionRepository(store *Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (repo *sessionRepository) Create(_ context.Context, session *entity.Session) error {
	return repo.store.access(repo.locked, true, func(t *tables) error {
		if _, ok := t.users[session.UserID]; !ok {
			return domainerrors.ErrUserNotFound.WrapMessage("session owner does not exist")
		}

		session.CreatedAt = repo.store.now()
		t.sessions[session.ID] = copySession(session)

		return nil
	})
}

func (repo *sessionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	var found *entity.Session
	err := repo.store.access(repo.locked, false, func(t *tables) error {
		session, ok := t.sessions[id]
		if !ok {
			return repository.ErrSessionNotFound
		}
		found = copySession(session)

		return nil
	})

	return found, err
}

func (repo *sessionRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	return repo.store.access(repo.locked, true, func(t *tables) error {
		delete(t.sessions, id)

		return nil
	})
}

func (repo *sessionRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	return repo.store.access(repo.locked, true, func(t *tables) error {
		for id, session := range t.sessions {
			if session.UserID == userID {
				delete(t.sessions, id)
			}
		}

		return nil
	})
}

func (repo *sessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	err := repo.store.access(repo.locked, true, func(t *tables) error {
		for id, session := range t.sessions {
			if session.IsExpired(now) {
				delete(t.sessions, id)
				removed++
			}
		}

		return nil
	})

	return removed, err
}
