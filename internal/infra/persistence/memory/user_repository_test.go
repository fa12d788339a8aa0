package memory

import (
	"sync"
	"testing"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(name, email string) *entity.User {
	return &entity.User{Name: name, Email: email, PasswordHash: "hash-" + email}
}

func TestUserRepository_SaveAssignsIDAndTimestamps(t *testing.T) {
	repo := NewUserRepository(NewStore())
	user := newUser("Ann", "a@x.com")

	require.NoError(t, repo.Save(t.Context(), user))

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	found, err := repo.FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, found)
}

func TestUserRepository_SaveRejectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Save(t.Context(), newUser("Ann", "a@x.com")))

	err := repo.Save(t.Context(), newUser("Other", "a@x.com"))

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_EmailIsExactMatch(t *testing.T) {
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Save(t.Context(), newUser("Ann", "a@x.com")))

	exists, err := repo.ExistsByEmail(t.Context(), "A@X.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByEmail(t.Context(), "A@X.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateKeepsCreatedAtAndMovesEmailIndex(t *testing.T) {
	store := NewStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	repo := NewUserRepository(store)

	user := newUser("Ann", "a@x.com")
	require.NoError(t, repo.Save(t.Context(), user))

	clock = clock.Add(time.Hour)
	user.Name = "Annie"
	user.Email = "annie@x.com"
	require.NoError(t, repo.Save(t.Context(), user))

	found, err := repo.FindByEmail(t.Context(), "annie@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Annie", found.Name)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), found.CreatedAt)
	assert.Equal(t, clock, found.UpdatedAt)

	exists, err := repo.ExistsByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateRejectsEmailOfAnotherUser(t *testing.T) {
	repo := NewUserRepository(NewStore())
	first := newUser("Ann", "a@x.com")
	second := newUser("Bob", "b@x.com")
	require.NoError(t, repo.Save(t.Context(), first))
	require.NoError(t, repo.Save(t.Context(), second))

	second.Email = "a@x.com"
	err := repo.Save(t.Context(), second)

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_UpdateMissingUser(t *testing.T) {
	repo := NewUserRepository(NewStore())
	ghost := newUser("Ghost", "g@x.com")
	ghost.ID = uuid.New()

	err := repo.Save(t.Context(), ghost)

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ReturnedUsersAreCopies(t *testing.T) {
	repo := NewUserRepository(NewStore())
	user := newUser("Ann", "a@x.com")
	require.NoError(t, repo.Save(t.Context(), user))

	found, err := repo.FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	found.Name = "mutated"

	again, err := repo.FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Name)
}

func TestUserRepository_FindAllInInsertionOrder(t *testing.T) {
	repo := NewUserRepository(NewStore())
	emails := []string{"c@x.com", "a@x.com", "b@x.com"}
	for _, email := range emails {
		require.NoError(t, repo.Save(t.Context(), newUser("n", email)))
	}

	users, err := repo.FindAll(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, email := range emails {
		assert.Equal(t, email, users[i].Email)
	}
}

func TestUserRepository_DeleteByID(t *testing.T) {
	store := NewStore()
	repo := NewUserRepository(store)
	sessions := NewSessionRepository(store)

	user := newUser("Ann", "a@x.com")
	require.NoError(t, repo.Save(t.Context(), user))
	session := &entity.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Create(t.Context(), session))

	require.NoError(t, repo.DeleteByID(t.Context(), user.ID))

	exists, err := repo.ExistsByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = sessions.FindByID(t.Context(), session.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, repo.DeleteByID(t.Context(), user.ID))
}

func TestUserRepository_ConcurrentRegistrationOfSameEmail(t *testing.T) {
	repo := NewUserRepository(NewStore())

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Save(t.Context(), newUser("n", "race@x.com")); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}
