package memory

import (
	"testing"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *Store, email string) *entity.User {
	t.Helper()

	user := newUser("n", email)
	require.NoError(t, NewUserRepository(store).Save(t.Context(), user))

	return user
}

func TestSessionRepository_CreateAndFind(t *testing.T) {
	store := NewStore()
	user := seedUser(t, store, "a@x.com")
	repo := NewSessionRepository(store)

	session := &entity.Session{ID: uuid.New(), UserID: user.ID, Username: "n", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(t.Context(), session))
	assert.False(t, session.CreatedAt.IsZero())

	found, err := repo.FindByID(t.Context(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session, found)
}

func TestSessionRepository_CreateForUnknownUser(t *testing.T) {
	repo := NewSessionRepository(NewStore())

	err := repo.Create(t.Context(), &entity.Session{ID: uuid.New(), UserID: uuid.New()})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSessionRepository_DeleteByUserID(t *testing.T) {
	store := NewStore()
	ann := seedUser(t, store, "a@x.com")
	bob := seedUser(t, store, "b@x.com")
	repo := NewSessionRepository(store)

	annSession := &entity.Session{ID: uuid.New(), UserID: ann.ID, ExpiresAt: time.Now().Add(time.Hour)}
	bobSession := &entity.Session{ID: uuid.New(), UserID: bob.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(t.Context(), annSession))
	require.NoError(t, repo.Create(t.Context(), bobSession))

	require.NoError(t, repo.DeleteByUserID(t.Context(), ann.ID))

	_, err := repo.FindByID(t.Context(), annSession.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = repo.FindByID(t.Context(), bobSession.ID)
	assert.NoError(t, err)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	store := NewStore()
	user := seedUser(t, store, "a@x.com")
	repo := NewSessionRepository(store)
	now := time.Now()

	expired := &entity.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}
	boundary := &entity.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: now}
	live := &entity.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(time.Minute)}
	for _, s := range []*entity.Session{expired, boundary, live} {
		require.NoError(t, repo.Create(t.Context(), s))
	}

	removed, err := repo.DeleteExpired(t.Context(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.FindByID(t.Context(), live.ID)
	assert.NoError(t, err)
}
